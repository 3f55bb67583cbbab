package store

import (
	"encoding/json"
	"strings"
)

// TextContent is the writable body of one text run.
type TextContent struct {
	Content string `json:"content"`
}

// RichText is one text run of a title or rich-text field value.
type RichText struct {
	Type      string       `json:"type,omitempty"`
	Text      *TextContent `json:"text,omitempty"`
	PlainText string       `json:"plain_text,omitempty"`
}

// Option is one select / multi-select choice name.
type Option struct {
	Name string `json:"name"`
}

// DateValue is the store's date field payload.
type DateValue struct {
	Start string `json:"start"`
}

// FieldValue is one typed field value on a row. Exactly one of the shape
// members is populated, discriminated by Type. These shapes are fixed by the
// store and must round-trip exactly.
type FieldValue struct {
	Type        string     `json:"type,omitempty"`
	Title       []RichText `json:"title,omitempty"`
	RichText    []RichText `json:"rich_text,omitempty"`
	Select      *Option    `json:"select,omitempty"`
	MultiSelect []Option   `json:"multi_select,omitempty"`
	Checkbox    *bool      `json:"checkbox,omitempty"`
	Date        *DateValue `json:"date,omitempty"`
}

// PlainText flattens a field value into display text: text runs are joined,
// multi-select names are comma separated. Unsupported kinds yield "".
func (v FieldValue) PlainText() string {
	switch v.Type {
	case "title":
		return joinRuns(v.Title)
	case "rich_text":
		return joinRuns(v.RichText)
	case "select":
		if v.Select != nil {
			return v.Select.Name
		}
		return ""
	case "multi_select":
		names := make([]string, 0, len(v.MultiSelect))
		for _, opt := range v.MultiSelect {
			names = append(names, opt.Name)
		}
		return strings.TrimSpace(strings.Join(names, ", "))
	default:
		return ""
	}
}

func joinRuns(runs []RichText) string {
	var b strings.Builder
	for _, r := range runs {
		if r.PlainText != "" {
			b.WriteString(r.PlainText)
		} else if r.Text != nil {
			b.WriteString(r.Text.Content)
		}
	}
	return strings.TrimSpace(b.String())
}

// TitleValue builds a writable title field value.
func TitleValue(text string) FieldValue {
	return FieldValue{Type: "title", Title: []RichText{{Type: "text", Text: &TextContent{Content: text}}}}
}

// RichTextValue builds a writable rich-text field value.
func RichTextValue(text string) FieldValue {
	return FieldValue{RichText: []RichText{{Type: "text", Text: &TextContent{Content: text}}}, Type: "rich_text"}
}

// MultiSelectValue builds a writable multi-select field value.
func MultiSelectValue(names []string) FieldValue {
	opts := make([]Option, 0, len(names))
	for _, name := range names {
		opts = append(opts, Option{Name: name})
	}
	return FieldValue{Type: "multi_select", MultiSelect: opts}
}

// CheckboxValue builds a writable checkbox field value.
func CheckboxValue(checked bool) FieldValue {
	return FieldValue{Type: "checkbox", Checkbox: &checked}
}

// FieldSchema describes one field of a container schema. Config carries the
// kind-specific configuration verbatim so a cloned container reproduces it
// exactly (a choice field keeps its option list, and so on).
type FieldSchema struct {
	Type   string
	Config json.RawMessage
}

// MarshalJSON emits {"<type>": <config>} as the store expects when creating
// or patching a schema.
func (f FieldSchema) MarshalJSON() ([]byte, error) {
	cfg := f.Config
	if len(cfg) == 0 {
		cfg = json.RawMessage(`{}`)
	}
	return json.Marshal(map[string]json.RawMessage{f.Type: cfg})
}

// UnmarshalJSON reads the store's schema member, which carries a "type"
// discriminator alongside a member named after the type.
func (f *FieldSchema) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if t, ok := raw["type"]; ok {
		var typ string
		if err := json.Unmarshal(t, &typ); err != nil {
			return err
		}
		f.Type = typ
		f.Config = raw[typ]
		return nil
	}
	// Writable form: a single {"<type>": <config>} member.
	for key, cfg := range raw {
		f.Type = key
		f.Config = cfg
		return nil
	}
	return nil
}

// MultiSelectOptions decodes the option list of a multi-select field schema.
func (f FieldSchema) MultiSelectOptions() []Option {
	if f.Type != "multi_select" || len(f.Config) == 0 {
		return nil
	}
	var cfg struct {
		Options []Option `json:"options"`
	}
	if err := json.Unmarshal(f.Config, &cfg); err != nil {
		return nil
	}
	return cfg.Options
}

// MultiSelectSchema builds a multi-select field schema from an option list.
func MultiSelectSchema(options []Option) FieldSchema {
	cfg, _ := json.Marshal(map[string][]Option{"options": options})
	return FieldSchema{Type: "multi_select", Config: cfg}
}

// Container is a schema'd collection of rows.
type Container struct {
	ID     string                 `json:"id"`
	Title  []RichText             `json:"title"`
	Schema map[string]FieldSchema `json:"properties"`
}

// PlainTitle flattens the container title runs.
func (c *Container) PlainTitle() string {
	return joinRuns(c.Title)
}

// TitleFieldKey returns the first field of title kind in the schema. Schemas
// are not assumed fixed, so callers must not hardcode the primary-name field.
func (c *Container) TitleFieldKey() (string, bool) {
	for key, field := range c.Schema {
		if field.Type == "title" {
			return key, true
		}
	}
	return "", false
}

// Row is one record with typed field values inside a container.
type Row struct {
	ID          string                `json:"id"`
	CreatedTime string                `json:"created_time,omitempty"`
	Archived    bool                  `json:"archived,omitempty"`
	Fields      map[string]FieldValue `json:"properties"`
}

// ChildBlock is one child of a page: a nested container or page.
type ChildBlock struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Title       string `json:"-"`
	CreatedTime string `json:"created_time,omitempty"`
}

const (
	ChildTypeContainer = "child_database"
	ChildTypePage      = "child_page"
)

// Query narrows and orders a container query. Only the shapes the engine
// needs are modeled: exact title match filtering and field sorts.
type Query struct {
	TitleFilterField  string
	TitleFilterEquals string
	Sorts             []Sort
	PageSize          int
}

// Sort orders query results on one field.
type Sort struct {
	Field      string
	Descending bool
}
