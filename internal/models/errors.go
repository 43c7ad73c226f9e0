package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
)

var (
	ErrPersonCodeNotUnique      = errors.New("the person code must be unique")
	ErrSplitMethodJSONRequired  = errors.New("custom split methods need a JSON payload")
	ErrSplitTypeInvalid         = errors.New("the split type must be 1 (equal), 2 (ownership), 3 (occupancy) or 4 (custom)")
	ErrStayDatesInverted        = errors.New("the end date of an overnight stay must not be before its start date")
	ErrStayPersonCountInvalid   = errors.New("the person count of an overnight stay must be at least 1")
	ErrExpenseAmountNotPositive = errors.New("expense amounts must be larger than zero")
)

// Custom split payload errors
var (
	ErrCustomSplitInvalidJSON = errors.New("the custom split payload is not valid JSON")
	ErrCustomSplitUnknownType = errors.New("the custom split type must be one of 'percentage', 'fixed' or 'weights'")
	ErrCustomSplitEmpty       = errors.New("the custom split payload does not contain any splits")
)

// Status errors
var (
	ErrStatusUnknown = errors.New("the status value is not recognized")
)
