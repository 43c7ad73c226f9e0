package models_test

import (
	"testing"

	"github.com/splithaus/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestSplitTypeValid() {
	assert.True(suite.T(), models.SplitTypeEqual.Valid())
	assert.True(suite.T(), models.SplitTypeCustom.Valid())
	assert.False(suite.T(), models.SplitType(0).Valid())
	assert.False(suite.T(), models.SplitType(9).Valid())
}

func (suite *TestSuiteStandard) TestSplitMethodJSONRequired() {
	err := models.DB.Create(&models.SplitMethod{Type: models.SplitTypeCustom, Name: "Custom"}).Error
	require.NotNil(suite.T(), err)
	assert.ErrorIs(suite.T(), err, models.ErrSplitMethodJSONRequired)

	// Only custom methods need a payload
	method := suite.createTestSplitMethod(models.SplitMethod{Type: models.SplitTypeEqual, Name: "Equal"})
	assert.Equal(suite.T(), uint(101), method.ID)
}

func (suite *TestSuiteStandard) TestParseCustomSplit() {
	split, err := models.ParseCustomSplit(`{"type": "percentage", "splits": [{"pid": "P1", "pct": 60}, {"pid": "P2", "pct": 40}]}`)
	require.Nil(suite.T(), err)

	assert.Equal(suite.T(), models.CustomSplitPercentage, split.Type)
	require.Len(suite.T(), split.Splits, 2)
	assert.Equal(suite.T(), "P1", split.Splits[0].PID)
	assert.Equal(suite.T(), "60", split.Splits[0].Pct.String())
}

func (suite *TestSuiteStandard) TestParseCustomSplitErrors() {
	tests := []struct {
		name    string
		payload string
		wantErr error
	}{
		{"Malformed JSON", `{"type": "percentage"`, models.ErrCustomSplitInvalidJSON},
		{"Unknown type", `{"type": "thirds", "splits": [{"pid": "P1"}]}`, models.ErrCustomSplitUnknownType},
		{"No splits", `{"type": "weights", "splits": []}`, models.ErrCustomSplitEmpty},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			_, err := models.ParseCustomSplit(tt.payload)
			require.NotNil(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
