package ledger

// TokenForTest exposes the held bearer token to tests only.
func (c *Client) TokenForTest() string {
	if t := c.currentToken(); t != nil {
		return t.AccessToken
	}
	return ""
}
