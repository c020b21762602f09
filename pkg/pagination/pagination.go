package pagination

const (
	DefaultPage  = 1
	DefaultLimit = 200
	MaxLimit     = 1000
	MinLimit     = 1
)

// Params holds validated pagination parameters for batch scans.
type Params struct {
	Page   int
	Limit  int
	Offset int
}

// New validates page/limit and computes the offset.
func New(page, limit int) Params {
	if page < 1 {
		page = DefaultPage
	}
	if limit < MinLimit {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Params{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// Next returns the parameters for the following page.
func (p Params) Next() Params {
	return New(p.Page+1, p.Limit)
}
