package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client.
var UserAgent = "Go-Sitter/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go Sitter"
	AppID             = "com.github.tartampluch.go-sitter"
	KeyringService    = "com.github.tartampluch.go-sitter"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
	IconFile          = "Icon.png"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	// Used for sensitive files like logs.
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion        = "version"
	FlagDebug          = "debug"
	FlagRoster         = "roster"
	FlagRosterUser     = "roster-user"
	FlagPort           = "port"
	FlagDescVersion    = "Show application version and exit"
	FlagDescDebug      = "Enable debug logging to stdout"
	FlagDescRoster     = "Roster source: empty for the built-in roster, a YAML file path, or an http(s) URL"
	FlagDescRosterUser = "Basic Auth user for a remote roster (password is read from the OS keyring)"
	FlagDescPort       = "Local port of the schedule/contacts feed server"
	MsgVersionOutput   = "%s version %s (%s/%s)\n"
)

// -----------------------------------------------------------------------------
// Environment Variables
// -----------------------------------------------------------------------------

const (
	EnvFile           = ".env"
	EnvRoster         = "GO_SITTER_ROSTER"
	EnvRosterUser     = "GO_SITTER_ROSTER_USER"
	EnvPort           = "GO_SITTER_PORT"
	EnvLanguage       = "GO_SITTER_LANG"
	EnvDailyTrigger   = "GO_SITTER_DAILY_TRIGGER"
	EnvEveningTrigger = "GO_SITTER_EVENING_TRIGGER"
)

// -----------------------------------------------------------------------------
// UI Constants & Preferences
// -----------------------------------------------------------------------------

const (
	SettingsWindowWidth = 480
	DashboardWinWidth   = 640
	DashboardWinHeight  = 720

	// Preference Keys
	PrefLanguage        = "language"
	PrefServerPort      = "server_port"
	PrefNotifPermission = "notification_permission"
	PrefLastRun         = "last_run_version"
	PrefSourceMode      = "source_mode"
	PrefRosterURL       = "roster_url"
	PrefRosterUser      = "roster_user"
	PrefLocalPath       = "local_path"
	PlaceholderURL      = "https://example.com/roster.yaml"

	// MinuteTick is the refresh period of the dashboard and tray status.
	MinuteTick = time.Minute

	// External launchers
	MapsSearchURL   = "https://www.google.com/maps/search/"
	MapsParamAPI    = "api"
	MapsParamAPIVal = "1"
	MapsParamQuery  = "query"
	SchemeTel       = "tel:"

	// Display formats
	CurrencyFormat = "€%s"
	FormatChild    = "%s (%dy)"
	ListSeparator  = ", "
	DateFormatLong = "January 2, 2006 15:04"
	TimeFormatHM   = "15:04"
)

// SupportedLanguages defines the list of available UI languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWinDashboard     = "win_dashboard_title"
	TKeyWinSettings      = "win_settings_title"
	TKeyMenuDashboard    = "menu_dashboard"
	TKeyMenuSettings     = "menu_settings"
	TKeyMenuTestDaily    = "menu_test_daily"
	TKeyMenuTestEvening  = "menu_test_evening"
	TKeyMenuEnableNotif  = "menu_enable_notifications"
	TKeyTrayWorking      = "tray_working" // Requires Family
	TKeyTrayToday        = "tray_today"   // Requires Family, Start
	TKeyTrayDayOff       = "tray_day_off"
	TKeyLblWorkingNow    = "lbl_working_now"
	TKeyLblTodayTitle    = "lbl_today_assignment"
	TKeyLblNoAssignment  = "lbl_no_assignment"
	TKeyLblDayOff        = "lbl_day_off"
	TKeyLblTodayEarnings = "lbl_today_earnings"
	TKeyLblWeekly        = "lbl_weekly"
	TKeyLblMonthly       = "lbl_monthly"
	TKeyLblGross         = "lbl_gross"
	TKeyLblNet           = "lbl_net"
	TKeyLblHoursRate     = "lbl_hours_rate" // Requires Hours, Rate
	TKeyLblWeeksMonth    = "lbl_weeks_per_month"
	TKeyLblSchedule      = "lbl_weekly_schedule"
	TKeyLblNetWeek       = "lbl_net_per_week" // Requires Amount
	TKeyLblChildren      = "lbl_children"
	TKeyLblPickup        = "lbl_pickup"
	TKeyLblContacts      = "lbl_contacts"
	TKeyStatusConfirmed  = "status_confirmed"
	TKeyStatusPending    = "status_pending"
	TKeyBtnMap           = "btn_open_map"
	TKeyBtnCall          = "btn_call"
	TKeyBtnEnableNotif   = "btn_enable_notifications"
	TKeyNotifUnsupported = "notif_state_unsupported"
	TKeyNotifDefault     = "notif_state_default"
	TKeyNotifGranted     = "notif_state_granted"
	TKeyNotifDenied      = "notif_state_denied"
	TKeyNotifDeniedHelp  = "notif_denied_help"
	TKeyNotifPromptTitle = "notif_prompt_title"
	TKeyNotifPromptBody  = "notif_prompt_body"
	TKeyLblSource        = "lbl_source"
	TKeyModeBuiltin      = "mode_builtin"
	TKeyModeLocal        = "mode_local"
	TKeyModeWeb          = "mode_web"
	TKeyLblURL           = "lbl_url"
	TKeyHelpURL          = "help_url"
	TKeyLblUser          = "lbl_user"
	TKeyLblPass          = "lbl_password"
	TKeyBtnBrowse        = "btn_browse"
	TKeyBtnResetNotif    = "btn_reset_notifications"
	TKeyLblLanguage      = "lbl_language"
	TKeyHelpLanguage     = "help_language"
	TKeyLblPort          = "lbl_server_port"
	TKeyHelpPort         = "help_port"
	TKeyLblGeneral       = "lbl_general"
	TKeyLblNotif         = "lbl_notifications"
	TKeyBtnSave          = "btn_save"
	TKeyBtnCancel        = "btn_cancel"
	TKeyLblFooter        = "lbl_footer"
	TKeyFormatDate       = "format_date_long"

	// Reminder payloads
	TKeyRemTodayTitle   = "reminder_today_title" // Requires Family
	TKeyRemTodayBody    = "reminder_today_body"  // Requires Start, End, Address
	TKeyRemDayOffTitle  = "reminder_day_off_title"
	TKeyRemDayOffBody   = "reminder_day_off_body"
	TKeyRemEarlyTitle   = "reminder_early_title"
	TKeyRemEarlyBody    = "reminder_early_body" // Requires Wake, Family, Start, End, Address
	TKeyRemEnabledTitle = "reminder_enabled_title"
	TKeyRemEnabledBody  = "reminder_enabled_body"

	// TKeyDayPrefix is joined with the lower-case English weekday ("day_monday").
	TKeyDayPrefix = "day_"

	// Validation Errors (UI)
	TKeyErrPortReq   = "err_port_required"
	TKeyErrPortNum   = "err_port_number"
	TKeyErrPortRange = "err_port_range"
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	SourceModeBuiltin = "builtin"
	SourceModeLocal   = "local"
	SourceModeWeb     = "web"
	DefaultPort       = "18081"
	DefaultLanguage   = "en"
	UIDSalt           = "go-sitter-v1-" // Salt for deterministic UID generation

	// Pay
	DefaultGrossHourly      = 13.08
	DefaultContributionRate = 0.22
	WeeksPerMonth           = 4.33

	// Clock arithmetic
	MinutesPerHour = 60
	HoursPerDay    = 24
	DaysPerWeek    = 7

	// Roster statuses as written in YAML
	StatusConfirmed = "confirmed"
	StatusPending   = "pending"

	// FormatClock renders hour/minute as HH:MM.
	FormatClock = "%02d:%02d"
	// FormatMoney renders an amount with two decimals.
	FormatMoney = "%.2f"
)

// -----------------------------------------------------------------------------
// Reminders
// -----------------------------------------------------------------------------

const (
	TaskDaily   = "daily"
	TaskEvening = "evening"

	DailyReminderHour     = 8
	DailyReminderMinute   = 0
	EveningReminderDay    = time.Tuesday
	EveningReminderHour   = 22
	EveningReminderMinute = 0

	// WakeUpLead is how long before an early shift the wake-up time is suggested.
	WakeUpLead = 3 * time.Hour

	TagDaily       = "daily-schedule"
	TagEvening     = "tuesday-evening-reminder"
	TagTest        = "test-notification"
	TagTestEvening = "test-tuesday-notification"

	IconBaby  = "👶"
	IconAlarm = "⏰"
	IconSun   = "☀️"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	// iCal Properties
	ICalVersion        = "2.0"
	ICalProdid         = "-//Go Sitter//Schedule//EN"
	ICalCalName        = "Babysitting"
	ICalMethod         = "PUBLISH"
	ICalScale          = "GREGORIAN"
	ICalComponent      = "VALARM"
	ICalAction         = "DISPLAY"
	ICalDomain         = "gositter"
	ICalFloatingLayout = "20060102T150405"
	DefaultAlarm       = "-PT1H"

	// iCal Fields
	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDTStart     = "DTSTART"
	PropDTEnd       = "DTEND"
	PropDTStamp     = "DTSTAMP"
	PropRRule       = "RRULE"
	PropLocation    = "LOCATION"
	PropRefresh     = "REFRESH-INTERVAL"
	PropAction      = "ACTION"
	PropDescription = "DESCRIPTION"
	PropTrigger     = "TRIGGER"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"

	// vCard
	VCardVersion      = "4.0"
	VCardKind         = "group"
	FormatNoteKids    = "Children: %s"
	FormatNotePickup  = "Pickup: %s, %s"
	NoteLineSeparator = "\n"

	DefaultICalRefresh = 1 * time.Hour

	// UID Generation
	UIDHashLength   = 16
	FormatHashInput = "%s|%d|%s|%s"
	FormatUID       = "%s-%d@%s"
)

// -----------------------------------------------------------------------------
// Data Formats, Limits & File Extensions
// -----------------------------------------------------------------------------

const (
	MinPort = 1
	MaxPort = 65535

	// MaxPortDigits is the length of "65535".
	MaxPortDigits = 5

	ExtYAML = ".yaml"
	ExtYML  = ".yml"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	RetryAfterSeconds   = "10"
	AllowedMethods      = "GET, HEAD"
	MaxHTTPResponseSize = 1024 * 1024 // 1MB, a roster is a few KB
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	RouteRoot           = "/"
	RouteCalendar       = "/schedule.ics"
	RouteContacts       = "/contacts.vcf"
	AddrSeparator       = ":"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderUserAgent       = "User-Agent"
	HeaderAccept          = "Accept"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeVCard           = "text/vcard; charset=utf-8"
	MimeNoSniff         = "nosniff"
	MimeRosterAccept    = "application/yaml, text/yaml;q=0.9, text/plain;q=0.5"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrLocalPathEmpty   = "configuration error: local path is empty"
	ErrWebURLEmpty      = "configuration error: web URL is empty"
	ErrFetcherMissing   = "internal error: network fetcher is not initialized"
	ErrModeUnsupport    = "configuration error: unsupported source mode"
	ErrServerStartup    = "server startup failed"
	ErrServerShutdown   = "server shutdown failed"
	ErrPortRequired     = "server port is required"
	ErrInvalidURL       = "invalid URL structure"
	ErrProtocol         = "unsupported protocol scheme (http/https only)"
	ErrRequestBuild     = "failed to create roster request"
	ErrNetwork          = "network error during roster fetch"
	ErrHTTPStatus       = "roster server returned unexpected status"
	ErrRosterTooLarge   = "roster document exceeds the size limit"
	ErrRosterRead       = "failed to read roster"
	ErrRosterDecode     = "failed to decode roster"
	ErrRosterEmptyID    = "invalid roster: family id and name are required"
	ErrRosterDuplicate  = "invalid roster: duplicate family id"
	ErrRosterStatus     = "invalid roster: unknown family status"
	ErrRosterDay        = "invalid roster: day must be between 0 (Sunday) and 6 (Saturday)"
	ErrRosterTime       = "invalid roster: time must be HH:MM"
	ErrRosterOrder      = "invalid roster: shift start must precede its end"
	ErrRosterOverlap    = "invalid roster: overlapping shifts on the same day"
	ErrRosterRates      = "invalid roster: rates must be positive and contribution below 1"
	ErrRosterHours      = "invalid roster: weekly hours must not be negative"
	ErrICalEncode       = "failed to encode iCalendar data"
	ErrVCardEncode      = "failed to encode vCard data"
	ErrLogFile          = "failed to open log file"
	ErrCacheDir         = "could not determine user cache dir"
	ErrCreateDir        = "could not create app cache dir"
	ErrAppFailed        = "application failed unexpectedly"
	ErrWriteResp        = "failed to write response body"
	ErrLocalesAccess    = "failed to access embedded locales"
	ErrLocaleLoad       = "failed to load locale file"
	ErrTrayNotSupported = "system tray not supported on this platform/driver"
	ErrNotifUnsupported = "notifications are not supported on this platform"
	ErrNotifDenied      = "notification permission denied"
	ErrNotifRequest     = "notification permission request failed"
	ErrNotifSend        = "failed to send notification"
	ErrTriggerParse     = "invalid reminder trigger"
	ErrReminderPanic    = "reminder job panicked"
	ErrOpenURL          = "failed to open external URL"
	ErrUnknownFeed      = "unknown feed route"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Feed initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
	HTTPMsgNotFound     = "Not Found"
)

// -----------------------------------------------------------------------------
// Fallbacks & Defaults
// -----------------------------------------------------------------------------

const (
	FallbackTrayLabel    = "Go Sitter"
	FallbackTrayWorking  = "Working now: %s"
	FallbackTrayToday    = "Today: %s at %s"
	FallbackTrayDayOff   = "Day off"
	FallbackTodayTitle   = "Today: %s"
	FallbackTodayBody    = "%s - %s\n%s"
	FallbackDayOffTitle  = "No Babysitting Today"
	FallbackDayOffBody   = "Enjoy your day off! 🎉"
	FallbackEarlyTitle   = "Early Shift Tomorrow! ⏰"
	FallbackEarlyBody    = "Wake up at %s for %s (%s - %s)\n%s"
	FallbackEnabledTitle = "Notifications Enabled! 🎉"
	FallbackEnabledBody  = "You'll receive daily reminders at 8:00 AM and early shift reminders at 10:00 PM on Tuesdays."

	// StubVCalendar is the minimal valid iCalendar object used when no shifts exist.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"

	TitleStartupError = "Startup Error"

	MsgPortBusy           = "Port %s is busy or unavailable."
	MsgAppStop            = "Application stopped gracefully"
	MsgCtxCancel          = "Context cancelled, shutting down UI"
	MsgAppStarting        = "Starting application"
	MsgRosterLoaded       = "Roster loaded"
	MsgFeedsBuilt         = "Schedule and contacts feeds built"
	MsgServerListen       = "HTTP server listening"
	MsgServerStop         = "Shutting down HTTP server..."
	MsgCacheUpdated       = "Feed cache updated"
	MsgWorkerStart        = "Minute ticker started"
	MsgWorkerStop         = "Minute ticker stopping due to context cancellation"
	MsgSchedulerStart     = "Reminder scheduler started"
	MsgSchedulerStop      = "Reminder scheduler stopped"
	MsgReminderArmed      = "Reminder armed"
	MsgReminderFired      = "Reminder fired"
	MsgReminderSkipped    = "Reminder skipped, notification permission not granted"
	MsgReminderNoShift    = "No shift tomorrow, evening reminder skipped"
	MsgNotifSent          = "Notification sent"
	MsgPermissionState    = "Notification permission state"
	MsgPermissionRequest  = "Requesting notification permission"
	MsgLocaleSkip         = "Skipping non-locale file"
	MsgLocaleBadName      = "Skipping malformed locale filename"
	MsgLocaleLoaded       = "Locale loaded successfully"
	MsgTransMissing       = "Missing translation key"
	MsgPassFail           = "Password retrieval failed (might be empty)"
	MsgLogWarning         = "Warning: %s at %s: %v\n"
	MsgEnvFileMissing     = "No .env file loaded"
	MsgTriggerOverride    = "Reminder trigger overridden"
	MsgDashboardOpen      = "Opening dashboard window"
	MsgSettingsOpen       = "Opening settings window"
	MsgSettingsSave       = "Saving preferences"
	MsgSettingsFocus      = "Settings window already open, requesting focus"
	MsgRosterReload       = "Reloading roster after source change"
	MsgOpenURL            = "Opening external URL"
	MsgKeyringSaveFailure = "Failed to save credentials to keyring"
	MsgFetchStart         = "Downloading roster"
	MsgFetchStatus        = "Roster server returned error status"
	MsgFetchOK            = "Roster response received"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent  = "component"
	LogKeyError      = "error"
	LogKeyURL        = "url"
	LogKeyStatus     = "status_code"
	LogKeyLength     = "content_length"
	LogKeyFile       = "file"
	LogKeyLang       = "lang"
	LogKeyKey        = "key"
	LogKeyPort       = "port"
	LogKeyMode       = "mode"
	LogKeyUser       = "user"
	LogKeySizeBytes  = "size_bytes"
	LogKeyETag       = "etag"
	LogKeyRoute      = "route"
	LogKeyValue      = "value"
	LogKeyFamilies   = "families"
	LogKeyShifts     = "shifts"
	LogKeyTask       = "task"
	LogKeyNext       = "next_fire"
	LogKeyDelay      = "delay"
	LogKeyTag        = "tag"
	LogKeyPermission = "permission"
	LogKeyDuration   = "duration_ms"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompUI       = "ui"
	CompUISet    = "ui_settings"
	CompSchedule = "schedule"
	CompServer   = "server"
	CompFetcher  = "fetcher"
	CompWorker   = "worker"
	CompMain     = "main"
	CompI18n     = "i18n"
	CompReminder = "reminder"
	CompNotifier = "notifier"
	CompConfig   = "config"
)

// -----------------------------------------------------------------------------
// UI Layout Constants
// -----------------------------------------------------------------------------

const (
	LayoutColumnsDouble = 2
)
