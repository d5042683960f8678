// Package content holds the editable static pages of the storefront: FAQ,
// policies and the about and contact pages.
package content

type FAQCategory struct {
	ID     string `json:"id" validate:"required"`
	Name   string `json:"name" validate:"required"`
	NameAr string `json:"nameAr"`
	Icon   string `json:"icon"`
	Order  int    `json:"order"`
}

type FAQItem struct {
	ID         string `json:"id" validate:"required"`
	Question   string `json:"question" validate:"required"`
	QuestionAr string `json:"questionAr"`
	Answer     string `json:"answer"`
	AnswerAr   string `json:"answerAr"`
	Category   string `json:"category"`
	Order      int    `json:"order"`
}

// PolicySection is one block of the return, privacy or terms pages.
type PolicySection struct {
	ID        string `json:"id" validate:"required"`
	Title     string `json:"title" validate:"required"`
	TitleAr   string `json:"titleAr"`
	Content   string `json:"content"`
	ContentAr string `json:"contentAr"`
	Icon      string `json:"icon"`
	Order     int    `json:"order"`
}

type Value struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	TitleAr       string `json:"titleAr"`
	Description   string `json:"description"`
	DescriptionAr string `json:"descriptionAr"`
	Icon          string `json:"icon"`
}

type Stat struct {
	ID      string `json:"id"`
	Value   string `json:"value"`
	Label   string `json:"label"`
	LabelAr string `json:"labelAr"`
}

type AboutPage struct {
	HeroTitle       string  `json:"heroTitle"`
	HeroTitleAr     string  `json:"heroTitleAr"`
	HeroSubtitle    string  `json:"heroSubtitle"`
	HeroSubtitleAr  string  `json:"heroSubtitleAr"`
	StoryTitle      string  `json:"storyTitle"`
	StoryTitleAr    string  `json:"storyTitleAr"`
	StoryContent    string  `json:"storyContent"`
	StoryContentAr  string  `json:"storyContentAr"`
	YearsInBusiness string  `json:"yearsInBusiness"`
	Values          []Value `json:"values" validate:"dive"`
	Stats           []Stat  `json:"stats" validate:"dive"`
}

type ContactPage struct {
	HeroTitle      string   `json:"heroTitle"`
	HeroTitleAr    string   `json:"heroTitleAr"`
	HeroSubtitle   string   `json:"heroSubtitle"`
	HeroSubtitleAr string   `json:"heroSubtitleAr"`
	Address        string   `json:"address"`
	AddressAr      string   `json:"addressAr"`
	Phone          string   `json:"phone"`
	Email          string   `json:"email" validate:"omitempty,email"`
	WorkingHours   string   `json:"workingHours"`
	WorkingHoursAr string   `json:"workingHoursAr"`
	MapEmbedURL    string   `json:"mapEmbedUrl" validate:"omitempty,url"`
	Features       []string `json:"features"`
	FeaturesAr     []string `json:"featuresAr"`
}

func DefaultFAQCategories() []FAQCategory {
	return []FAQCategory{
		{ID: "1", Name: "Shipping & Delivery", NameAr: "الشحن والتوصيل", Icon: "truck", Order: 1},
		{ID: "2", Name: "Returns & Exchange", NameAr: "الإرجاع والاستبدال", Icon: "refresh", Order: 2},
		{ID: "3", Name: "Payment", NameAr: "الدفع", Icon: "credit-card", Order: 3},
	}
}

func DefaultFAQItems() []FAQItem {
	return []FAQItem{{
		ID:         "1",
		Question:   "What areas do you deliver to?",
		QuestionAr: "ما هي مناطق التوصيل؟",
		Answer:     "We deliver across all UAE including Dubai, Abu Dhabi, Sharjah...",
		AnswerAr:   "نقوم بالتوصيل إلى جميع أنحاء الإمارات...",
		Category:   "1",
		Order:      1,
	}}
}

func DefaultReturnPolicy() []PolicySection {
	return []PolicySection{{
		ID:        "1",
		Title:     "Eligible for Return",
		TitleAr:   "المؤهل للإرجاع",
		Content:   "Items in original, unused condition...",
		ContentAr: "العناصر في حالتها الأصلية وغير المستخدمة...",
		Icon:      "check-circle",
		Order:     1,
	}}
}

func DefaultPrivacyPolicy() []PolicySection {
	return []PolicySection{{
		ID:        "1",
		Title:     "Information We Collect",
		TitleAr:   "المعلومات التي نجمعها",
		Content:   "We collect information you provide directly to us...",
		ContentAr: "نجمع المعلومات التي تقدمها لنا مباشرة...",
		Icon:      "file-text",
		Order:     1,
	}}
}

func DefaultTerms() []PolicySection {
	return []PolicySection{{
		ID:        "1",
		Title:     "Acceptance of Terms",
		TitleAr:   "قبول الشروط",
		Content:   "By accessing and using Green Grass Store website...",
		ContentAr: "من خلال الوصول واستخدام موقع جرين جراس...",
		Icon:      "file-text",
		Order:     1,
	}}
}

func DefaultAboutPage() AboutPage {
	return AboutPage{
		HeroTitle:       "About Green Grass",
		HeroTitleAr:     "عن جرين جراس",
		HeroSubtitle:    "Bringing nature into every home across the UAE",
		HeroSubtitleAr:  "نجلب الطبيعة إلى كل منزل في الإمارات",
		StoryTitle:      "A Passion for Plants & Beautiful Spaces",
		StoryTitleAr:    "شغف بالنباتات والمساحات الجميلة",
		StoryContent:    "Founded in Dubai in 2018, Green Grass Store began with a simple mission...",
		StoryContentAr:  "تأسست في دبي عام 2018، بدأ متجر جرين جراس بمهمة بسيطة...",
		YearsInBusiness: "6+",
		Values: []Value{
			{ID: "1", Title: "Sustainability", TitleAr: "الاستدامة", Description: "Eco-friendly practices", DescriptionAr: "ممارسات صديقة للبيئة", Icon: "leaf"},
			{ID: "2", Title: "Quality", TitleAr: "الجودة", Description: "Only the finest products", DescriptionAr: "أجود المنتجات فقط", Icon: "heart"},
		},
		Stats: []Stat{
			{ID: "1", Value: "10K+", Label: "Happy Customers", LabelAr: "عملاء سعداء"},
			{ID: "2", Value: "500+", Label: "Products", LabelAr: "منتج"},
		},
	}
}

func DefaultContactPage() ContactPage {
	return ContactPage{
		HeroTitle:      "We'd Love to Hear From You",
		HeroTitleAr:    "يسعدنا سماعك",
		HeroSubtitle:   "Have questions about our products?",
		HeroSubtitleAr: "هل لديك أسئلة حول منتجاتنا؟",
		Address:        "Al Quoz Industrial Area 3, Dubai, UAE",
		AddressAr:      "منطقة القوز الصناعية 3، دبي، الإمارات",
		Phone:          "+971 54 775 1901",
		Email:          "info@greengrassstore.com",
		WorkingHours:   "Sat-Thu: 9AM-9PM, Fri: 2PM-9PM",
		WorkingHoursAr: "السبت-الخميس: 9ص-9م، الجمعة: 2م-9م",
		MapEmbedURL:    "https://www.google.com/maps/embed",
		Features:       []string{"Free consultation for bulk orders", "Same day delivery in Dubai"},
		FeaturesAr:     []string{"استشارة مجانية للطلبات بالجملة", "توصيل في نفس اليوم في دبي"},
	}
}
