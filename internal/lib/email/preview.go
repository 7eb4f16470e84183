package email

// PreviewData contains sample template data for local preview and
// template development: templateName -> (variable -> example value).
var PreviewData = map[string]map[string]string{
	"form_received": {
		"EntryID":    "1",
		"CustomerID": "42",
		"Comment":    "hello",
	},
}
