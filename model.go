// Copyright 2025 Agentic World, LLC (Sherin Thomas)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package pagesnake

import "time"

// TextBlockType classifies a text-bearing element
type TextBlockType string

const (
	TextHeading   TextBlockType = "heading"
	TextParagraph TextBlockType = "paragraph"
	TextButton    TextBlockType = "button"
	TextLink      TextBlockType = "link"
	TextListItem  TextBlockType = "list-item"
	TextOther     TextBlockType = "other"
)

// TextBlock is one de-duplicated piece of visible copy
type TextBlock struct {
	ID           string        `json:"id"`
	Selector     string        `json:"selector"`
	TagName      string        `json:"tagName"`
	Type         TextBlockType `json:"type"`
	OriginalText string        `json:"originalText"`
}

// LinkType is the intent assigned to a link by the classification cascade
type LinkType string

const (
	LinkAffiliate  LinkType = "affiliate"
	LinkTracking   LinkType = "tracking"
	LinkRedirect   LinkType = "redirect"
	LinkCTA        LinkType = "cta"
	LinkNavigation LinkType = "navigation"
	LinkExternal   LinkType = "external"
	LinkInternal   LinkType = "internal"
)

// DetectedLink is a URL found anywhere in the document together with its classified intent.
// Confidence is a heuristic score, not a probability.
type DetectedLink struct {
	ID              string   `json:"id"`
	Type            LinkType `json:"type"`
	OriginalURL     string   `json:"originalUrl"`
	AnchorText      string   `json:"anchorText,omitempty"`
	Selector        string   `json:"selector"`
	Confidence      float64  `json:"confidence"`
	DetectionReason string   `json:"detectionReason"`
	// Source is where the URL was found (href, onclick, data-attribute, formaction, iframe, script)
	Source string `json:"source"`
	// Position is the page region the element sits in (content, navigation, header, footer, ...)
	Position string `json:"position,omitempty"`
	// Context is the text surrounding the link
	Context string `json:"context,omitempty"`
}

// TrackingType names the tracking vendor family
type TrackingType string

const (
	TrackingFacebookPixel    TrackingType = "facebook-pixel"
	TrackingGoogleAnalytics  TrackingType = "google-analytics"
	TrackingGoogleTagManager TrackingType = "google-tag-manager"
	TrackingTikTokPixel      TrackingType = "tiktok-pixel"
	TrackingCustom           TrackingType = "custom"
	TrackingOther            TrackingType = "other"
)

// TrackingCode is an analytics or ad-tracking snippet found in the document
type TrackingCode struct {
	ID            string       `json:"id"`
	Type          TrackingType `json:"type"`
	Vendor        string       `json:"vendor"`
	Code          string       `json:"code"`
	Selector      string       `json:"selector,omitempty"`
	ShouldRemove  bool         `json:"shouldRemove"`
	ShouldReplace bool         `json:"shouldReplace"`
}

// SectionType is the semantic role of a page section
type SectionType string

const (
	SectionHeader       SectionType = "header"
	SectionHero         SectionType = "hero"
	SectionFeatures     SectionType = "features"
	SectionBenefits     SectionType = "benefits"
	SectionTestimonials SectionType = "testimonials"
	SectionSocialProof  SectionType = "social-proof"
	SectionPricing      SectionType = "pricing"
	SectionFAQ          SectionType = "faq"
	SectionCTA          SectionType = "cta"
	SectionFooter       SectionType = "footer"
	SectionForm         SectionType = "form"
	SectionGallery      SectionType = "gallery"
	SectionVideo        SectionType = "video"
	SectionUnknown      SectionType = "unknown"
)

// PageSection is a semantic segment of the page. Sections are ordered
// but may overlap or nest.
type PageSection struct {
	ID         string      `json:"id"`
	Type       SectionType `json:"type"`
	Selector   string      `json:"selector"`
	Order      int         `json:"order"`
	HTML       string      `json:"html"`
	Markdown   string      `json:"markdown,omitempty"`
	TextLength int         `json:"textLength"`
	// DetectedBy records which tier of the detection cascade produced the section
	DetectedBy string `json:"detectedBy"`
}

// Headline is an h1-h6 element
type Headline struct {
	ID             string `json:"id"`
	Text           string `json:"text"`
	Level          int    `json:"level"`
	Selector       string `json:"selector"`
	IsMainHeadline bool   `json:"isMainHeadline"`
	SectionID      string `json:"sectionId,omitempty"`
}

// Subheadline is supporting copy directly under a heading
type Subheadline struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Selector  string `json:"selector"`
	SectionID string `json:"sectionId,omitempty"`
}

// Paragraph is body copy
type Paragraph struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Selector  string `json:"selector"`
	SectionID string `json:"sectionId,omitempty"`
}

// ButtonType classifies a clickable element
type ButtonType string

const (
	ButtonCTA        ButtonType = "cta"
	ButtonSubmit     ButtonType = "submit"
	ButtonNavigation ButtonType = "navigation"
	ButtonSecondary  ButtonType = "secondary"
)

// Button is a button, submit input or button-styled anchor
type Button struct {
	ID         string     `json:"id"`
	Text       string     `json:"text"`
	Type       ButtonType `json:"type"`
	Href       string     `json:"href,omitempty"`
	Selector   string     `json:"selector"`
	HasUrgency bool       `json:"hasUrgency"`
	SectionID  string     `json:"sectionId,omitempty"`
}

// ImageRole is the component-level image classification
type ImageRole string

const (
	ImageHero    ImageRole = "hero"
	ImageIcon    ImageRole = "icon"
	ImageContent ImageRole = "content"
)

// Image is an <img> element that is not a tracking pixel or spacer
type Image struct {
	ID        string    `json:"id"`
	Src       string    `json:"src"`
	Alt       string    `json:"alt,omitempty"`
	Role      ImageRole `json:"role"`
	Width     int       `json:"width,omitempty"`
	Height    int       `json:"height,omitempty"`
	Selector  string    `json:"selector"`
	SectionID string    `json:"sectionId,omitempty"`
}

// FormField is one input inside a form
type FormField struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Label       string `json:"label,omitempty"`
	Placeholder string `json:"placeholder,omitempty"`
	Required    bool   `json:"required"`
}

// Form is a recovered form with its submission target
type Form struct {
	ID         string      `json:"id"`
	Selector   string      `json:"selector"`
	Action     string      `json:"action,omitempty"`
	Method     string      `json:"method"`
	Fields     []FormField `json:"fields"`
	SubmitText string      `json:"submitText,omitempty"`
	SectionID  string      `json:"sectionId,omitempty"`
}

// ListType classifies a list by its marker style
type ListType string

const (
	ListBullet   ListType = "bullet"
	ListNumbered ListType = "numbered"
	ListCheck    ListType = "check"
)

// List is a ul/ol with its item texts
type List struct {
	ID        string   `json:"id"`
	Type      ListType `json:"type"`
	Items     []string `json:"items"`
	Selector  string   `json:"selector"`
	SectionID string   `json:"sectionId,omitempty"`
}

// VideoType identifies the video host
type VideoType string

const (
	VideoHTML5   VideoType = "html5"
	VideoYouTube VideoType = "youtube"
	VideoVimeo   VideoType = "vimeo"
	VideoEmbed   VideoType = "embed"
)

// Video is an html5 video or a video iframe embed
type Video struct {
	ID        string    `json:"id"`
	Type      VideoType `json:"type"`
	Src       string    `json:"src"`
	Selector  string    `json:"selector"`
	SectionID string    `json:"sectionId,omitempty"`
}

// ComponentMap groups extracted components by kind. SectionID fields are
// lookup-only references into the section list.
type ComponentMap struct {
	Headlines    []Headline    `json:"headlines"`
	Subheadlines []Subheadline `json:"subheadlines"`
	Paragraphs   []Paragraph   `json:"paragraphs"`
	Buttons      []Button      `json:"buttons"`
	Images       []Image       `json:"images"`
	Forms        []Form        `json:"forms"`
	Lists        []List        `json:"lists"`
	Videos       []Video       `json:"videos"`
}

// PersuasionType is one of the persuasion techniques recognized on a page
type PersuasionType string

const (
	PersuasionUrgency     PersuasionType = "urgency"
	PersuasionScarcity    PersuasionType = "scarcity"
	PersuasionSocialProof PersuasionType = "social-proof"
	PersuasionAuthority   PersuasionType = "authority"
	PersuasionTrustBadge  PersuasionType = "trust-badge"
	PersuasionGuarantee   PersuasionType = "guarantee"
	PersuasionFOMO        PersuasionType = "fomo"
	PersuasionCountdown   PersuasionType = "countdown"
	PersuasionDiscount    PersuasionType = "discount"
	PersuasionFreeOffer   PersuasionType = "free-offer"
)

// Strength grades how deliberate a persuasion element looks
type Strength string

const (
	StrengthWeak   Strength = "weak"
	StrengthMedium Strength = "medium"
	StrengthStrong Strength = "strong"
)

// PersuasionElement is one detected persuasion technique
type PersuasionElement struct {
	ID        string         `json:"id"`
	Type      PersuasionType `json:"type"`
	Selector  string         `json:"selector"`
	Content   string         `json:"content"`
	Strength  Strength       `json:"strength"`
	MatchedBy string         `json:"matchedBy"`
}

// ColorPalette buckets normalized hex colors
type ColorPalette struct {
	Primary    []string `json:"primary"`
	Secondary  []string `json:"secondary"`
	Background []string `json:"background"`
	Text       []string `json:"text"`
	CTA        []string `json:"cta"`
}

// Typography lists the font families and sizes in use
type Typography struct {
	HeadingFonts []string `json:"headingFonts"`
	BodyFonts    []string `json:"bodyFonts"`
	FontSizes    []string `json:"fontSizes"`
}

// Layout summarizes page layout signals
type Layout struct {
	MaxWidth          string `json:"maxWidth,omitempty"`
	HasFixedHeader    bool   `json:"hasFixedHeader"`
	HasStickyElements bool   `json:"hasStickyElements"`
	ColumnLayout      string `json:"columnLayout"`
}

// StyleInfo is the visual design summary of a page
type StyleInfo struct {
	Colors     ColorPalette `json:"colors"`
	Typography Typography   `json:"typography"`
	Layout     Layout       `json:"layout"`
}

// FlowType is the overall shape of the funnel
type FlowType string

const (
	FlowSinglePage FlowType = "single-page"
	FlowMultiStep  FlowType = "multi-step"
	FlowLongForm   FlowType = "long-form"
	FlowVideoSales FlowType = "video-sales"
)

// StagePurpose is the funnel purpose a stage serves
type StagePurpose string

const (
	PurposeAttention         StagePurpose = "attention"
	PurposeInterest          StagePurpose = "interest"
	PurposeDesire            StagePurpose = "desire"
	PurposeAction            StagePurpose = "action"
	PurposeTrust             StagePurpose = "trust"
	PurposeObjectionHandling StagePurpose = "objection-handling"
)

// Framework is the inferred copywriting framework
type Framework string

const (
	FrameworkAIDA   Framework = "AIDA"
	FrameworkPAS    Framework = "PAS"
	FrameworkBAB    Framework = "BAB"
	FrameworkCustom Framework = "custom"
)

// CTAFrequency describes how calls to action repeat across the page
type CTAFrequency string

const (
	CTASingle      CTAFrequency = "single"
	CTARepeated    CTAFrequency = "repeated"
	CTAProgressive CTAFrequency = "progressive"
)

// FlowStage is one step of the funnel journey
type FlowStage struct {
	Order        int          `json:"order"`
	SectionID    string       `json:"sectionId"`
	SectionType  SectionType  `json:"sectionType"`
	Purpose      StagePurpose `json:"purpose"`
	HasCTAButton bool         `json:"hasCtaButton"`
	KeyMessage   string       `json:"keyMessage,omitempty"`
}

// CTAStrategy summarizes the calls to action
type CTAStrategy struct {
	PrimaryCTA       string       `json:"primaryCta"`
	PrimaryTargetURL string       `json:"primaryTargetUrl,omitempty"`
	Frequency        CTAFrequency `json:"frequency"`
	CTACount         int          `json:"ctaCount"`
	CTATexts         []string     `json:"ctaTexts"`
}

// QuizSignals records which JavaScript multi-step signals fired
type QuizSignals struct {
	QuestionArray    bool `json:"questionArray"`
	QuestionObjects  int  `json:"questionObjects"`
	StepIndicatorMax int  `json:"stepIndicatorMax"`
	StateVariable    bool `json:"stateVariable"`
	StepHandler      bool `json:"stepHandler"`
	QuestionTexts    int  `json:"questionTexts"`
	// QuestionNumbered is set when the copy numbers its questions ("Question 2")
	QuestionNumbered bool `json:"questionNumbered"`
}

// LPFlow is the reconstructed funnel journey
type LPFlow struct {
	Type          FlowType     `json:"type"`
	Stages        []FlowStage  `json:"stages"`
	Framework     Framework    `json:"framework"`
	CTAStrategy   CTAStrategy  `json:"ctaStrategy"`
	MessagingFlow []string     `json:"messagingFlow"`
	DetectedBy    string       `json:"detectedBy"`
	QuizSignals   *QuizSignals `json:"quizSignals,omitempty"`
}

// Vertical is the market a landing page targets
type Vertical string

const (
	VerticalAdult      Vertical = "adult"
	VerticalCasual     Vertical = "casual"
	VerticalMainstream Vertical = "mainstream"
)

// Tone is the dominant voice of the copy
type Tone string

const (
	ToneProfessional Tone = "professional"
	ToneCasual       Tone = "casual"
	ToneUrgent       Tone = "urgent"
	TonePlayful      Tone = "playful"
	ToneSeductive    Tone = "seductive"
	ToneExclusive    Tone = "exclusive"
	ToneFriendly     Tone = "friendly"
)

// ImageCategory is the visual role of an image on the page
type ImageCategory string

const (
	ImageCategoryHero       ImageCategory = "hero"
	ImageCategoryBackground ImageCategory = "background"
	ImageCategoryDecorative ImageCategory = "decorative"
	ImageCategoryIcon       ImageCategory = "icon"
	ImageCategoryBadge      ImageCategory = "badge"
	ImageCategoryProfile    ImageCategory = "profile"
)

// DetectedImage is an image or CSS background with its visual role
type DetectedImage struct {
	ID        string        `json:"id"`
	URL       string        `json:"url"`
	Alt       string        `json:"alt,omitempty"`
	Category  ImageCategory `json:"category"`
	Selector  string        `json:"selector"`
	Width     int           `json:"width,omitempty"`
	Height    int           `json:"height,omitempty"`
	SectionID string        `json:"sectionId,omitempty"`
}

// ComponentKind names the bucket an AnalyzedComponent came from
type ComponentKind string

const (
	ComponentHeadline    ComponentKind = "headline"
	ComponentSubheadline ComponentKind = "subheadline"
	ComponentParagraph   ComponentKind = "paragraph"
	ComponentButton      ComponentKind = "button"
	ComponentImage       ComponentKind = "image"
	ComponentForm        ComponentKind = "form"
	ComponentList        ComponentKind = "list"
	ComponentVideo       ComponentKind = "video"
)

// AnalyzedComponent is the flattened, page-ordered view of one component
type AnalyzedComponent struct {
	ID   string        `json:"id"`
	Kind ComponentKind `json:"kind"`
	// Role is the kind-specific subtype (button type, image role, list type, ...)
	Role      string `json:"role,omitempty"`
	Text      string `json:"text,omitempty"`
	URL       string `json:"url,omitempty"`
	Selector  string `json:"selector"`
	SectionID string `json:"sectionId,omitempty"`
}

// DetectedSection is a section together with the components it contains
type DetectedSection struct {
	ID           string       `json:"id"`
	Type         SectionType  `json:"type"`
	Order        int          `json:"order"`
	Selector     string       `json:"selector"`
	HTML         string       `json:"html"`
	Markdown     string       `json:"markdown,omitempty"`
	TextLength   int          `json:"textLength"`
	DetectedBy   string       `json:"detectedBy"`
	Purpose      StagePurpose `json:"purpose"`
	Headline     string       `json:"headline,omitempty"`
	ComponentIDs []string     `json:"componentIds"`
}

// PageAnalysis is the raw extractor output for one document
type PageAnalysis struct {
	SourceURL     string              `json:"sourceUrl,omitempty"`
	Title         string              `json:"title"`
	Description   string              `json:"description,omitempty"`
	TextBlocks    []TextBlock         `json:"textBlocks"`
	Links         []DetectedLink      `json:"links"`
	TrackingCodes []TrackingCode      `json:"trackingCodes"`
	Forms         []Form              `json:"forms"`
	Sections      []PageSection       `json:"sections"`
	Components    ComponentMap        `json:"components"`
	Persuasion    []PersuasionElement `json:"persuasion"`
	Style         StyleInfo           `json:"style"`
	Flow          LPFlow              `json:"flow"`
}

// ComponentAnalysis is the self-describing result of analyzing a page. It
// holds no reference to the DOM it was built from.
type ComponentAnalysis struct {
	ID              string              `json:"id"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
	SourceURL       string              `json:"sourceUrl,omitempty"`
	Title           string              `json:"title"`
	Description     string              `json:"description,omitempty"`
	Fingerprint     string              `json:"fingerprint"`
	Platform        string              `json:"platform"`
	Components      []AnalyzedComponent `json:"components"`
	Sections        []DetectedSection   `json:"sections"`
	Flow            LPFlow              `json:"flow"`
	Vertical        Vertical            `json:"vertical"`
	Tone            Tone                `json:"tone"`
	TrackingURL     string              `json:"trackingUrl,omitempty"`
	Images          []DetectedImage     `json:"images"`
	OriginalImages  []string            `json:"originalImages"`
	StrategySummary string              `json:"strategySummary"`
	Style           StyleInfo           `json:"style"`
	Persuasion      []PersuasionElement `json:"persuasion"`
	Links           []DetectedLink      `json:"links"`
	TrackingCodes   []TrackingCode      `json:"trackingCodes"`
	TextBlocks      []TextBlock         `json:"textBlocks"`
	Forms           []Form              `json:"forms"`
}
