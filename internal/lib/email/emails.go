package email

import "fmt"

// SendFormReceivedEmail notifies the site owner about a new form
// submission.
func (c *Client) SendFormReceivedEmail(to string, entryID, customerID int64, comment string) error {
	data := map[string]string{
		"EntryID":    fmt.Sprintf("%d", entryID),
		"CustomerID": fmt.Sprintf("%d", customerID),
		"Comment":    comment,
	}

	return c.SendEmail(
		to,
		fmt.Sprintf("New form submission #%d", entryID),
		TemplateFormReceived,
		data,
	)
}
