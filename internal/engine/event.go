package engine

// Kind classifies one inbound unit of user interaction.
type Kind int

const (
	// KindIgnore marks an update the transport cannot map to a user
	// interaction. The loop still advances past it.
	KindIgnore Kind = iota
	KindText
	KindVoice
	KindCallback
	KindLaunch
)

// Event is one inbound update with a monotonic identifier. The ingestion
// loop guarantees events arrive in non-decreasing ID order.
type Event struct {
	ID     int64
	UserID int64
	Kind   Kind

	// Text carries the message text for KindText and the callback data
	// for KindCallback.
	Text string

	// GestureID is the unique identifier of a button tap (KindCallback).
	GestureID string

	// VoiceFileID references the audio of a KindVoice event; the
	// transport downloads it on demand.
	VoiceFileID string

	// LaunchParam is the optional payload of a KindLaunch event.
	LaunchParam string
}

// Menu identifies a keyboard the transport renders.
type Menu int

const (
	MenuMain Menu = iota
	MenuSettings
)

// Transport is the outbound boundary. Sends are fire-and-forget: the
// state machine does not await delivery acknowledgement.
type Transport interface {
	SendText(userID int64, text string)
	SendMenu(userID int64, text string, menu Menu)
	AckGesture(gestureID string)
	DownloadVoice(fileID string) (data []byte, filename string, err error)
}

// Callback data vocabulary shared with the transport collaborator.
const (
	cbAdd        = "add"
	cbStats      = "stats"
	cbMoments    = "moments"
	cbSettings   = "settings"
	cbDialog     = "dialog"
	cbExit       = "exit"
	cbHelp       = "help"
	cbPrivacy    = "privacy"
	cbHoursStart = "set_hours_start"
	cbHoursEnd   = "set_hours_end"
	cbInterval   = "set_interval"
	cbNotifOn    = "notif_on"
	cbNotifOff   = "notif_off"
	cbLangRu     = "lang_ru"
	cbLangEn     = "lang_en"
	cbFormalOn   = "formal_on"
	cbFormalOff  = "formal_off"
)
