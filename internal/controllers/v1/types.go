package v1

type URIID struct {
	ID uint64 `uri:"id" binding:"required"` // ID of the resource
}

type Pagination struct {
	Count  int   `json:"count"`  // The amount of records returned in this response
	Offset uint  `json:"offset"` // The offset for the first record returned
	Limit  int   `json:"limit"`  // The maximum amount of resources to return for this request
	Total  int64 `json:"total"`  // The total number of resources matching the query
}

// paginate returns the page of items described by offset and limit.
// A negative limit disables the limit.
//
// List endpoints support glob filters the database cannot evaluate, so
// filtering happens on the full result set and the page is cut from the
// filtered rows. This keeps the total in the Pagination consistent with
// the filters.
func paginate[T any](items []T, offset, limit int) []T {
	if offset > len(items) {
		offset = len(items)
	}

	end := len(items)
	if limit >= 0 && offset+limit < end {
		end = offset + limit
	}

	return items[offset:end]
}
