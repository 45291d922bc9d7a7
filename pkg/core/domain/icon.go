package domain

// Icon is the symbolic name of the glyph shown next to a link.
type Icon string

const (
	IconGlobe     Icon = "globe"
	IconYouTube   Icon = "youtube"
	IconInstagram Icon = "instagram"
	IconTwitter   Icon = "twitter"
	IconLinkedIn  Icon = "linkedin"
	IconGitHub    Icon = "github"
	IconMail      Icon = "mail"
	IconPhone     Icon = "phone"
	IconShopping  Icon = "shopping"
	IconBook      Icon = "book"
	IconMusic     Icon = "music"
	IconCamera    Icon = "camera"
	IconHeart     Icon = "heart"
)

var knownIcons = map[Icon]struct{}{
	IconGlobe: {}, IconYouTube: {}, IconInstagram: {}, IconTwitter: {}, IconLinkedIn: {},
	IconGitHub: {}, IconMail: {}, IconPhone: {}, IconShopping: {}, IconBook: {},
	IconMusic: {}, IconCamera: {}, IconHeart: {},
}

// ParseIcon never fails: unknown or empty tags become IconGlobe so older records keep rendering.
func ParseIcon(s string) Icon {
	if _, ok := knownIcons[Icon(s)]; ok {
		return Icon(s)
	}
	return IconGlobe
}
