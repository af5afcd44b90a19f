package domain

// SocialLinks groups the storefront social media URLs.
type SocialLinks struct {
	Facebook  string `json:"facebook" mapstructure:"facebook"`
	Instagram string `json:"instagram" mapstructure:"instagram"`
	Twitter   string `json:"twitter" mapstructure:"twitter"`
}

// StoreInfo is the per-language storefront contact block shown in the
// shop footer and used as the order notification recipient.
type StoreInfo struct {
	Name     string      `json:"name" mapstructure:"name"`
	Email    string      `json:"email" mapstructure:"email"`
	Phone    string      `json:"phone" mapstructure:"phone"`
	Currency string      `json:"currency" mapstructure:"currency"`
	Address  string      `json:"address" mapstructure:"address"`
	Social   SocialLinks `json:"social" mapstructure:"social"`
}
