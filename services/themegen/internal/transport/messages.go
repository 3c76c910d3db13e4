package transport

// Message codes shown to end users.
const (
	MsgInvalidInput    = "invalid_input"
	MsgPromptTooLong   = "prompt_too_long"
	MsgMissingUser     = "missing_user"
	MsgNotConfigured   = "not_configured"
	MsgUpstreamError   = "upstream_error"
	MsgInvalidResponse = "invalid_response"
	MsgParseError      = "parse_error"
	MsgRateLimited     = "rate_limited"
	MsgPaymentRequired = "payment_required"
	MsgTooManyRequests = "too_many_requests"
	MsgUnauthorized    = "unauthorized"
	MsgUnexpected      = "unexpected"
)

var catalog = map[string]map[string]string{
	"ar": {
		MsgInvalidInput:    "يرجى إدخال وصف للثيم",
		MsgPromptTooLong:   "وصف الثيم طويل جداً",
		MsgMissingUser:     "بيانات المستخدم ناقصة",
		MsgNotConfigured:   "مفتاح API غير مكون",
		MsgUpstreamError:   "فشل في الاتصال بالذكاء الاصطناعي",
		MsgInvalidResponse: "استجابة غير صالحة من الذكاء الاصطناعي",
		MsgParseError:      "فشل في تحليل بيانات الثيم",
		MsgRateLimited:     "تم تجاوز حد الطلبات، يرجى المحاولة لاحقاً",
		MsgPaymentRequired: "يرجى إضافة رصيد لاستخدام الذكاء الاصطناعي",
		MsgTooManyRequests: "طلبات كثيرة، يرجى الانتظار قليلاً",
		MsgUnauthorized:    "يرجى تسجيل الدخول",
		MsgUnexpected:      "حدث خطأ غير متوقع",
	},
	"en": {
		MsgInvalidInput:    "Please enter a theme description",
		MsgPromptTooLong:   "The theme description is too long",
		MsgMissingUser:     "User data is missing a name or username",
		MsgNotConfigured:   "API key is not configured",
		MsgUpstreamError:   "Failed to reach the AI service",
		MsgInvalidResponse: "Invalid response from the AI service",
		MsgParseError:      "Failed to parse the theme data",
		MsgRateLimited:     "Rate limit exceeded, please try again later",
		MsgPaymentRequired: "Please add credits to use the AI service",
		MsgTooManyRequests: "Too many requests, please slow down",
		MsgUnauthorized:    "Please sign in",
		MsgUnexpected:      "An unexpected error occurred",
	},
}

// Messages resolves message codes in one display language.
type Messages struct{ lang string }

// NewMessages falls back to Arabic for unknown languages.
func NewMessages(lang string) Messages {
	if _, ok := catalog[lang]; !ok {
		lang = "ar"
	}
	return Messages{lang: lang}
}

func (m Messages) Get(code string) string {
	lang := m.lang
	if lang == "" {
		lang = "ar"
	}
	if s, ok := catalog[lang][code]; ok {
		return s
	}
	return catalog[lang][MsgUnexpected]
}
