package document

// Branding is the company identity printed in the PDF header and footer.
type Branding struct {
	Name      string
	LogoBytes []byte
	Address   string
	Phone     string
}

func (b Branding) HasLogo() bool {
	return len(b.LogoBytes) > 0
}
