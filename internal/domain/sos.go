package domain

// ComposeSOSMessage renders the alert body sent to every contact.
// It embeds exactly one map link for c.
func ComposeSOSMessage(c Coordinate) string {
	return "Message Alert!\n I need help.\nMy location: " + c.MapURL()
}
