package app

// Key binding constants used in handleKey.
const (
	KeyQuit      = "q"
	KeyQuitUpper = "Q"
	KeyCtrlC     = "ctrl+c"
	KeySpace     = " "
	KeyTab       = "tab"
	KeyUp        = "up"
	KeyDown      = "down"
	KeyJ         = "j"
	KeyK         = "k"
	KeyEnter     = "enter"
	KeyEscape    = "esc"
	KeyBackspace = "backspace"
	KeyNew       = "n"
	KeyDelete    = "d"
	KeyConfirm   = "y"
	KeyUpload    = "u"
	KeyAnalyze   = "a"
	KeyRefresh   = "r"
	KeyDismiss   = "x"
	KeyEditStart = "i"
	KeyEditEnd   = "o"
	KeyExportEDL = "e"
	KeyExportXML = "X"
	KeyExportSRT = "s"
	KeyExportMP4 = "v"
)
