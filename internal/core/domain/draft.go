package domain

// Draft is a saved form snapshot: field name → value. Text and select
// fields store their string value, multi-selects a string list, checkboxes
// the boolean true (an unchecked box is simply absent from the map). File
// inputs are never captured.
type Draft map[string]any

// Text returns the string value for a field, or "" when absent or not a
// string.
func (d Draft) Text(field string) string {
	if v, ok := d[field].(string); ok {
		return v
	}
	return ""
}

// Checked reports whether a checkbox field was saved as checked. Presence
// of the key is what counts; a missing key restores as unchecked.
func (d Draft) Checked(field string) bool {
	v, ok := d[field]
	if !ok {
		return false
	}
	b, ok := v.(bool)
	return !ok || b
}
