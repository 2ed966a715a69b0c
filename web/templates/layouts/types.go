package layouts

// AppLayoutData is passed to the layout template to configure the page shell.
type AppLayoutData struct {
	Title      string
	OfficeName string
	ActiveNav  string // e.g. "dashboard", "bills", "invoices", "salaries"
	Year       int    // selected fiscal year, 0 on pages without one
	FlashMsg   string
	FlashKind  string // "success", "error", "warning", "info"
	DefaultVAT string // rate in percent applied when a VAT field is left blank
}

// HasFlash reports whether a flash banner should be shown.
func (d AppLayoutData) HasFlash() bool {
	return d.FlashMsg != ""
}
