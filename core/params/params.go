package params

// QueryParams carries the common list-endpoint query values.
type QueryParams struct {
	PageNumber int    `query:"page_number"`
	PageSize   int    `query:"page_size"`
	Search     string `query:"search"`
}

func (p *QueryParams) Normalize() {
	if p.PageNumber < 1 {
		p.PageNumber = 1
	}
	if p.PageSize < 1 || p.PageSize > 100 {
		p.PageSize = 20
	}
}

func (p *QueryParams) Offset() int {
	return (p.PageNumber - 1) * p.PageSize
}
