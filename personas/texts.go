package personas

// User-facing text constants. These are opaque configuration as far as the
// core is concerned; the transports surface them verbatim.
const (
	// PlaceholderTitle is the title given to a session before its first user
	// message rewrites it.
	PlaceholderTitle = "নতুন ভক্ত"

	// FailureNotice replaces an assistant turn when the provider stream fails.
	FailureNotice = "বৎস, ইন্টারনেটের মায়ার কারণে সংযোগ বিচ্ছিন্ন হয়েছে। আবার চেষ্টা করো।"

	// DeleteConfirmPrompt is shown before a session is deleted. Deletion must
	// be gated behind an explicit confirmation signal.
	DeleteConfirmPrompt = "এই চ্যাটটি ডিলিট করতে চান?"

	// OversizedImageNotice is returned when an attachment exceeds the size cap.
	OversizedImageNotice = "File too large. Please select an image under 5MB."
)

// QuickPrompt is a canned opener surfaced on fresh sessions.
type QuickPrompt struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Prompt string `json:"prompt"`
}

// QuickPrompts in display order.
var QuickPrompts = []QuickPrompt{
	{
		ID:     "opening",
		Label:  "ওপেনিং লাইন",
		Prompt: "গুরু, একটা কিলার ওপেনিং মেসেজ দিন যা দেখলে ক্রাশ রিপ্লাই দিতে বাধ্য হবে।",
	},
	{
		ID:     "roast",
		Label:  "রোস্ট মি",
		Prompt: "আমার প্রেম করার যোগ্যতা নিয়ে একটা কঠিন রোস্ট করুন!",
	},
	{
		ID:     "rate_me",
		Label:  "লুকস ও ভাইব",
		Prompt: "আমার এই ছবিটা দেখে বলো আমার অরা (Aura) কেমন? সত্যি কথা বলবে!",
	},
	{
		ID:     "fix_me",
		Label:  "ব্রেকআপ টোটকা",
		Prompt: "মনটা খুব খারাপ, ভুলতে পারছি না। একটা সলিড টোটকা দিন।",
	},
}
