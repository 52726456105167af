package notion

// Wire types for the subset of the document-store REST API the pipeline
// uses. Shapes follow the Notion API version pinned in client.go; only the
// fields the pipeline reads or writes are typed.

type page struct {
	ID          string              `json:"id"`
	Icon        *icon               `json:"icon,omitempty"`
	CreatedTime string              `json:"created_time,omitempty"`
	Properties  map[string]property `json:"properties"`
}

type icon struct {
	Type  string `json:"type"`
	Emoji string `json:"emoji,omitempty"`
}

// property is the single read/write shape for every page property kind the
// pipeline touches. Exactly one payload field is set per property.
type property struct {
	Type        string         `json:"type,omitempty"`
	Title       []richText     `json:"title,omitempty"`
	RichText    []richText     `json:"rich_text,omitempty"`
	URL         *string        `json:"url,omitempty"`
	Select      *selectOption  `json:"select,omitempty"`
	MultiSelect []selectOption `json:"multi_select,omitempty"`
	Files       []fileRef      `json:"files,omitempty"`
	Checkbox    *bool          `json:"checkbox,omitempty"`
	Number      *float64       `json:"number,omitempty"`
	Date        *dateValue     `json:"date,omitempty"`
	Relation    []relationRef  `json:"relation,omitempty"`
}

type selectOption struct {
	Name string `json:"name"`
}

type relationRef struct {
	ID string `json:"id"`
}

type dateValue struct {
	Start    string `json:"start"`
	End      string `json:"end,omitempty"`
	TimeZone string `json:"time_zone,omitempty"`
}

type fileRef struct {
	Name     string   `json:"name,omitempty"`
	Type     string   `json:"type,omitempty"`
	File     *fileURL `json:"file,omitempty"`
	External *linkRef `json:"external,omitempty"`
}

type fileURL struct {
	URL        string `json:"url"`
	ExpiryTime string `json:"expiry_time,omitempty"`
}

type linkRef struct {
	URL string `json:"url"`
}

type richText struct {
	Type        string       `json:"type,omitempty"`
	Text        *textContent `json:"text,omitempty"`
	PlainText   string       `json:"plain_text,omitempty"`
	Annotations *annotations `json:"annotations,omitempty"`
	Href        string       `json:"href,omitempty"`
}

type textContent struct {
	Content string   `json:"content"`
	Link    *linkRef `json:"link,omitempty"`
}

type annotations struct {
	Bold          bool   `json:"bold,omitempty"`
	Italic        bool   `json:"italic,omitempty"`
	Underline     bool   `json:"underline,omitempty"`
	Strikethrough bool   `json:"strikethrough,omitempty"`
	Code          bool   `json:"code,omitempty"`
	Color         string `json:"color,omitempty"`
}

// block carries one child block; the payload field matching Type is set.
type block struct {
	Object           string        `json:"object,omitempty"`
	ID               string        `json:"id,omitempty"`
	Type             string        `json:"type"`
	HasChildren      bool          `json:"has_children,omitempty"`
	Paragraph        *blockPayload `json:"paragraph,omitempty"`
	Quote            *blockPayload `json:"quote,omitempty"`
	NumberedListItem *blockPayload `json:"numbered_list_item,omitempty"`
	BulletedListItem *blockPayload `json:"bulleted_list_item,omitempty"`
	Code             *blockPayload `json:"code,omitempty"`
	Divider          *struct{}     `json:"divider,omitempty"`
	Heading1         *blockPayload `json:"heading_1,omitempty"`
	Heading2         *blockPayload `json:"heading_2,omitempty"`
	Heading3         *blockPayload `json:"heading_3,omitempty"`
	Image            *imageBlock   `json:"image,omitempty"`
	TableOfContents  *tocBlock     `json:"table_of_contents,omitempty"`
}

type blockPayload struct {
	RichText []richText `json:"rich_text"`
	Color    string     `json:"color,omitempty"`
	Language string     `json:"language,omitempty"`
}

type imageBlock struct {
	Type     string   `json:"type,omitempty"`
	File     *fileURL `json:"file,omitempty"`
	External *linkRef `json:"external,omitempty"`
}

type tocBlock struct {
	Color string `json:"color,omitempty"`
}

// Request/response envelopes.

type databaseQuery struct {
	Filter      any        `json:"filter,omitempty"`
	Sorts       []sortSpec `json:"sorts,omitempty"`
	PageSize    int        `json:"page_size,omitempty"`
	StartCursor string     `json:"start_cursor,omitempty"`
}

type sortSpec struct {
	Property  string `json:"property,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
	Direction string `json:"direction"`
}

type queryResponse struct {
	Results    []page `json:"results"`
	HasMore    bool   `json:"has_more"`
	NextCursor string `json:"next_cursor"`
}

type blockListResponse struct {
	Results    []block `json:"results"`
	HasMore    bool    `json:"has_more"`
	NextCursor string  `json:"next_cursor"`
}

type appendChildrenRequest struct {
	Children []block `json:"children"`
}

type createPageRequest struct {
	Parent     pageParent          `json:"parent"`
	Icon       *icon               `json:"icon,omitempty"`
	Properties map[string]property `json:"properties"`
}

type pageParent struct {
	DatabaseID string `json:"database_id"`
}

type updatePageRequest struct {
	Properties map[string]property `json:"properties"`
}

type apiError struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
