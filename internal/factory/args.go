package factory

// Chrome and Edge flags that make the browser usable inside containers.
var containerFlags = []string{
	"--no-sandbox",
	"--disable-dev-shm-usage",
}

// hardenedChromiumFlags turn off extensions, background work and
// persistent state.
var hardenedChromiumFlags = []string{
	"--disable-extensions",
	"--disable-plugins",
	"--disable-dev-shm-usage",
	"--disable-gpu",
	"--no-first-run",
	"--disable-default-apps",
	"--disable-background-timer-throttling",
	"--disable-backgrounding-occluded-windows",
	"--disable-renderer-backgrounding",
	"--incognito",
	"--disable-background-networking",
	"--window-size=1920,1080",
}

// hardenedChromiumPrefs block notifications, geolocation, media capture and
// popups. Only WebDriver sessions can apply them.
func hardenedChromiumPrefs() map[string]interface{} {
	return map[string]interface{}{
		"profile.default_content_setting_values": map[string]interface{}{
			"notifications": 2,
			"geolocation":   2,
			"media_stream":  2,
		},
		"profile.default_content_settings.popups": 0,
	}
}

// hardenedFirefoxPrefs turn off web notifications, geolocation, push and
// the battery API.
func hardenedFirefoxPrefs() map[string]interface{} {
	return map[string]interface{}{
		"dom.webnotifications.enabled": false,
		"geo.enabled":                  false,
		"dom.push.enabled":             false,
		"dom.battery.enabled":          false,
	}
}

// headlessArg is the command line switch that hides the window of kind.
func headlessArg(kind BrowserKind) string {
	if kind == Firefox {
		return "-headless"
	}
	return "--headless=new"
}

// LaunchArgs returns the command line switches for kind, without
// duplicates, in a stable order. Chrome always runs with --no-sandbox and
// --disable-dev-shm-usage.
func LaunchArgs(kind BrowserKind, headless, hardened bool) []string {
	var args []string
	if headless {
		args = append(args, headlessArg(kind))
	}
	if kind == Chrome {
		args = append(args, containerFlags...)
	}
	if hardened && kind != Firefox {
		args = append(args, hardenedChromiumFlags...)
	}
	return dedupe(args)
}

// launchPrefs returns the preferences for kind, or nil.
func launchPrefs(kind BrowserKind, hardened bool) map[string]interface{} {
	if !hardened {
		return nil
	}
	if kind == Firefox {
		return hardenedFirefoxPrefs()
	}
	return hardenedChromiumPrefs()
}

func dedupe(args []string) []string {
	seen := make(map[string]bool, len(args))
	out := args[:0]
	for _, a := range args {
		if seen[a] {
			continue
		}
		seen[a] = true
		out = append(out, a)
	}
	return out
}
