package server

type weekPageData struct {
	Facility      string
	Days          int
	Start         string
	ImageURL      string
	CalendarURL   string
	PreviousURL   string
	NextURL       string
	GeneratedAt   string
	SlotLabels    []string
	FreeColor     string
	ReservedColor string
}

const weekPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Facility}} courts from {{.Start}}</title>
<style>
body { font-family: sans-serif; margin: 1em; }
.free { background: {{.FreeColor}}; padding: 0 .4em; }
.reserved { background: {{.ReservedColor}}; padding: 0 .4em; }
img { max-width: 100%; }
</style>
</head>
<body>
<h1>{{.Facility}} court availability</h1>
<p>{{.Days}} days starting {{.Start}}. Each day shows the tennis-only courts and the
courts shared with futsal, one column per hour from {{index .SlotLabels 0}} to
{{index .SlotLabels 15}}. A shared slot counts as <span class="free">free</span> when
any shared court is open; otherwise it is <span class="reserved">reserved</span>.</p>
<p><a href="{{.PreviousURL}}">&laquo; previous</a> | <a href="{{.NextURL}}">next &raquo;</a> | <a href="{{.CalendarURL}}">calendar feed</a></p>
<img src="{{.ImageURL}}" alt="{{.Facility}} availability from {{.Start}}">
<footer><p>generated at {{.GeneratedAt}}</p></footer>
</body>
</html>
`
