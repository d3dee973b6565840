package report

// Report is a rendered CSV file.
type Report struct {
	Filename string
	Content  []byte
}

type TypesResponse struct {
	Types []string `json:"types"`
}
