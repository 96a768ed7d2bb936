// Package timezone keeps the application location used to render dates.
//
// Call Init once at startup with the APP_TIMEZONE value:
//
//	if err := timezone.Init(cfg.App.Timezone); err != nil { ... }
//	now := timezone.Now()
//	label := timezone.Format(t, constant.ShortDateFormat)
//
// Until Init succeeds every helper works in UTC. Names must come from the IANA
// database, e.g. "UTC", "Asia/Jakarta", "Europe/London".
package timezone
