package openpgp

// parseUserID copies contentLength bytes verbatim; no semantic validation
// is performed (spec.md §4.D).
func parseUserID(c *cursor, h *Header) (*UserIDBody, error) {
	if c.remaining() < h.ContentLength {
		return nil, errf(ErrBufferOverflow, "user id packet needs %d bytes, %d remain", h.ContentLength, c.remaining())
	}
	data, err := c.readN(h.ContentLength)
	if err != nil {
		return nil, err
	}
	logf("user id: %q", data)
	return &UserIDBody{Data: data}, nil
}
