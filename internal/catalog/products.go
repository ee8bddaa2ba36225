package catalog

import "kam-store/internal/domain"

// products is the full KAM shoe line. Prices are whole naira.
var products = []domain.Product{
	{
		ID:          "kam-1s",
		Name:        "KAM 1s",
		Price:       15000,
		Description: "Classic design with premium comfort. Perfect for any occasion.",
		Image:       "https://images.unsplash.com/photo-1597045566677-8cf032ed6634?q=80&w=1000&auto=format&fit=crop",
		Category:    domain.CategoryRunning,
	},
	{
		ID:          "kam-1-2s",
		Name:        "KAM 1.2s",
		Price:       18000,
		Description: "Upgraded for better durability and style. A must-have for shoe enthusiasts.",
		Image:       "https://images.unsplash.com/photo-1608231387042-66d1773070a5?q=80&w=1000&auto=format&fit=crop",
		Category:    domain.CategoryRunning,
	},
	{
		ID:          "kam-2s",
		Name:        "KAM 2s",
		Price:       20000,
		Description: "Next-generation performance shoes built for ultimate support and style.",
		Image:       "https://images.unsplash.com/photo-1542291026-7eec264c27ff?q=80&w=1000&auto=format&fit=crop",
		Category:    domain.CategorySport,
	},
	{
		ID:          "kam-air",
		Name:        "KAM Air",
		Price:       22000,
		Description: "Lightweight with maximum cushioning for all-day comfort.",
		Image:       "https://images.unsplash.com/photo-1600185365926-3a2ce3cdb9eb?q=80&w=1000&auto=format&fit=crop",
		Category:    domain.CategoryLifestyle,
	},
	{
		ID:          "kam-lite",
		Name:        "KAM Lite",
		Price:       17500,
		Description: "Minimalist design with maximum comfort for everyday wear.",
		Image:       "https://images.unsplash.com/photo-1595950653106-6c9ebd614d3a?q=80&w=1000&auto=format&fit=crop",
		Category:    domain.CategoryLifestyle,
	},
	{
		ID:          "kam-pro",
		Name:        "KAM Pro",
		Price:       25000,
		Description: "Professional grade athletic shoes designed for peak performance.",
		Image:       "https://images.unsplash.com/photo-1606107557195-0e29a4b5b4aa?q=80&w=1000&auto=format&fit=crop",
		Category:    domain.CategorySport,
	},
	{
		ID:          "kam-sprint",
		Name:        "KAM Sprint",
		Price:       21000,
		Description: "Race-day speed with a responsive sole for fast finishes.",
		Image:       "https://images.unsplash.com/photo-1560769629-975ec94e6a86?q=80&w=1000&auto=format&fit=crop",
		Category:    domain.CategoryRunning,
	},
	{
		ID:          "kam-trail",
		Name:        "KAM Trail",
		Price:       23500,
		Description: "Rugged grip and weatherproof upper for off-road running.",
		Image:       "https://images.unsplash.com/photo-1520256862855-398228c41684?q=80&w=1000&auto=format&fit=crop",
		Category:    domain.CategoryRunning,
	},
	{
		ID:          "kam-flex",
		Name:        "KAM Flex",
		Price:       16500,
		Description: "Flexible knit upper that moves with you through the day.",
		Image:       "https://images.unsplash.com/photo-1491553895911-0055eca6402d?q=80&w=1000&auto=format&fit=crop",
		Category:    domain.CategoryLifestyle,
	},
	{
		ID:          "kam-street",
		Name:        "KAM Street",
		Price:       19000,
		Description: "Street-ready style with a cushioned ride for city life.",
		Image:       "https://images.unsplash.com/photo-1512374382149-233c42b6a83b?q=80&w=1000&auto=format&fit=crop",
		Category:    domain.CategoryLifestyle,
	},
	{
		ID:          "kam-max",
		Name:        "KAM Max",
		Price:       28000,
		Description: "Maximum support and impact protection for serious training.",
		Image:       "https://images.unsplash.com/photo-1539185441755-769473a23570?q=80&w=1000&auto=format&fit=crop",
		Category:    domain.CategorySport,
	},
}
