// models/export.go

package models

// PreviewItem is one indicator's sample of upstream data for the selected
// range and geography.
type PreviewItem struct {
	DataSource string   `json:"data_source"`
	Indicator  string   `json:"indicator"`
	RowCount   int      `json:"row_count"`
	Sample     *DataRow `json:"sample,omitempty"`
}

// QueryCode pairs generated Python and R snippets for reproducing the
// selected query against the upstream API clients.
type QueryCode struct {
	Python []string `json:"python"`
	R      []string `json:"r"`
}

// EpivisDataset is one dataset descriptor of the external visualization
// tool's fragment payload.
type EpivisDataset struct {
	Color  string            `json:"color"`
	Title  string            `json:"title"`
	Params map[string]string `json:"params"`
}
