package domain

// Task is an entry of the fixed task catalogue friends tick off each day.
type Task struct {
	ID          string `json:"id"          yaml:"id"`
	Title       string `json:"title"       yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Category    string `json:"category"    yaml:"category"`
}
