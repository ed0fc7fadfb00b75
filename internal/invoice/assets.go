package invoice

import (
	"image"
	"os"
	"path/filepath"

	// Register decoders so asset files can be sanity-checked before drawing.
	_ "image/jpeg"
	_ "image/png"
)

// Assets resolves the branded image files drawn around the invoice. Every
// image is optional: a missing or unreadable file is skipped so the financial
// content always renders.
type Assets struct {
	Logo         string
	ShopName     string
	ShopAddress  string
	PhoneIcon    string
	WhatsappIcon string
	MailIcon     string
	FooterBoard  string
}

// AssetsFromDir maps the conventional file names under dir.
func AssetsFromDir(dir string) Assets {
	return Assets{
		Logo:         filepath.Join(dir, "logo.png"),
		ShopName:     filepath.Join(dir, "shop_name.jpg"),
		ShopAddress:  filepath.Join(dir, "shop_address.jpg"),
		PhoneIcon:    filepath.Join(dir, "phone.png"),
		WhatsappIcon: filepath.Join(dir, "whatsapp.png"),
		MailIcon:     filepath.Join(dir, "mail.png"),
		FooterBoard:  filepath.Join(dir, "shop_footer_board.jpg"),
	}
}

// usableImage reports whether path points at a decodable image. Checking up
// front keeps the PDF document out of its sticky error state when an asset
// is absent or corrupt.
func usableImage(path string) bool {
	if path == "" {
		return false
	}
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	_, _, err = image.DecodeConfig(f)
	return err == nil
}
