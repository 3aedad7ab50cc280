package output

import "encoding/json"

// JSONFormatter serializes the report envelope as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(r *Report) ([]byte, error) {
	return json.MarshalIndent(r.ToMap(), "", "  ")
}
