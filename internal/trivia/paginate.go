package trivia

// Paginate returns the requested page of items and the unsliced total.
// Pages below 1 are treated as the first page; pages past the end are empty.
func Paginate(items []Question, page, pageSize int) ([]Question, int) {
	total := len(items)
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	pages := total / pageSize
	if total%pageSize != 0 {
		pages++
	}
	if page-1 >= pages {
		return []Question{}, total
	}
	start := (page - 1) * pageSize
	end := min(start+pageSize, total)

	out := make([]Question, end-start)
	copy(out, items[start:end])
	return out, total
}
