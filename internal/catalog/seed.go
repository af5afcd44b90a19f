package catalog

import "github.com/tilazone/tilazone/internal/domain"

// DefaultProducts returns the two built-in products used to seed an
// empty catalog slot on first access.
func DefaultProducts() []domain.Product {
	return []domain.Product{
		{
			ID:          1,
			Name:        "iPhone 14 Pro",
			Price:       14999,
			Description: "هاتف ذكي متطور مع كاميرا احترافية",
			Image:       "https://images.unsplash.com/photo-1678685888221-cda773a3dcdb?w=800&auto=format&fit=crop",
			Images: []string{
				"https://images.unsplash.com/photo-1678685888221-cda773a3dcdb?w=800&auto=format&fit=crop",
				"https://images.unsplash.com/photo-1678685888183-0bd8c0a0944c?w=800&auto=format&fit=crop",
				"https://images.unsplash.com/photo-1678685888159-849926755f1e?w=800&auto=format&fit=crop",
			},
			Videos: []string{
				"https://example.com/iphone-14-pro-video-4k.mp4",
			},
			Details:  "شاشة 6.1 بوصة، معالج A16 Bionic، كاميرا 48 ميجابكسل، تخزين 256GB",
			Category: "هواتف",
			Specs: map[string]string{
				"screen":    "6.1 بوصة Super Retina XDR",
				"processor": "A16 Bionic",
				"camera":    "نظام كاميرا احترافي ثلاثي",
				"battery":   "حتى 29 ساعة تشغيل فيديو",
				"storage":   "256GB",
			},
			LandingPageURL: "https://example.com/iphone-14-pro",
		},
		{
			ID:          2,
			Name:        "سماعات Sony WH-1000XM4",
			Price:       3499,
			Description: "سماعات لاسلكية مع خاصية إلغاء الضوضاء",
			Image:       "https://images.unsplash.com/photo-1618366712010-f4ae9c647dcb?w=800&auto=format&fit=crop",
			Images: []string{
				"https://images.unsplash.com/photo-1618366712010-f4ae9c647dcb?w=800&auto=format&fit=crop",
				"https://images.unsplash.com/photo-1618366712141-4e1fa4109a22?w=800&auto=format&fit=crop",
				"https://images.unsplash.com/photo-1618366712013-259d3e12cc9a?w=800&auto=format&fit=crop",
			},
			Details:  "جودة صوت عالية، بطارية تدوم 30 ساعة، تقنية LDAC للصوت عالي الدقة",
			Category: "إلكترونيات",
			Specs: map[string]string{
				"battery":      "30 ساعة",
				"connectivity": "Bluetooth 5.0",
				"features":     "إلغاء الضوضاء النشط",
				"weight":       "254g",
			},
		},
	}
}
