package dashboard

import (
	"html/template"
	"log/slog"
	"net/http"
)

var indexTmpl = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Mutual Fund Tracker</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 0.4em 0.8em; text-align: right; }
th { background: #f0f0f0; }
td.name { text-align: left; }
.neg { color: #b00; }
.pos { color: #080; }
</style>
</head>
<body>
<h1>Portfolio</h1>
<p>Last updated {{.LastUpdated}}</p>
<p>
Invested {{.Invested}} ·
Current {{.Current}} ·
Profit {{.Profit.SignedString}} ({{.ProfitPercent.SignedString}}) ·
Day change {{.TotalDayChange.SignedString}}
</p>
<table>
<tr><th>Fund</th><th>Day Change</th><th>Returns</th><th>Current</th><th>Invested</th><th>NAV Date</th></tr>
{{range .Rows}}
<tr>
<td class="name">{{.Name}}</td>
<td>{{.DayChange}}</td>
<td>{{.Returns.SignedString}} ({{.ReturnsPercent.SignedString}})</td>
<td>{{.Current}}</td>
<td>{{.Invested}}</td>
<td>{{.LatestNavDate}}</td>
</tr>
{{end}}
</table>
</body>
</html>
`))

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	sum, err := s.summary()
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTmpl.Execute(w, sum); err != nil {
		slog.Error("dashboard: render index", "err", err)
	}
}
