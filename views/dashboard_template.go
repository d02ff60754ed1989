package views

const dashboardTemplate = `<!DOCTYPE html>
<html lang="ru">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; margin: 0; color: #1f2933; }
header { padding: 16px 24px; border-bottom: 1px solid #e4e7eb; }
header small { color: #616e7c; }
.layout { display: flex; }
aside { width: 280px; padding: 16px 24px; border-right: 1px solid #e4e7eb; }
aside fieldset { border: none; padding: 0; margin: 0 0 16px; }
aside legend { font-weight: 600; margin-bottom: 4px; }
main { flex: 1; padding: 16px 24px; overflow-x: auto; }
.kpis { display: flex; gap: 16px; margin-bottom: 16px; }
.kpi { flex: 1; padding: 12px; border: 1px solid #e4e7eb; border-radius: 6px; }
.kpi b { display: block; font-size: 24px; }
table { border-collapse: collapse; width: 100%; font-size: 13px; }
th, td { border-bottom: 1px solid #e4e7eb; padding: 4px 6px; text-align: left; vertical-align: top; }
.card { border: 1px solid #e4e7eb; border-radius: 6px; padding: 12px; margin-bottom: 8px; }
.card h4 { margin: 0 0 4px; }
.meta { color: #616e7c; font-size: 13px; }
.error { padding: 16px; background: #fde8e8; color: #9b1c1c; border-radius: 6px; }
</style>
</head>
<body>
<header>
<h1>Zh Scopus — портал публикаций</h1>
<small>{{.Caption}}</small>
</header>
{{if .Error}}
<main><div class="error">{{.Error}}</div></main>
{{else}}
<div class="layout">
<aside>
<form method="get" action="/">
<h3>Фильтры</h3>
<fieldset>
<legend>Быстрые интервалы</legend>
{{range .Presets}}<label><input type="radio" name="preset" value="{{.Key}}"{{if .Selected}} checked{{end}}> {{.Label}} <small>{{.Range}}</small></label><br>
{{end}}</fieldset>
<fieldset>
<legend>Диапазон лет</legend>
<input type="number" name="year_from" value="{{.YearFrom}}" min="{{.Info.YearMin}}" max="{{.Info.YearMax}}">
–
<input type="number" name="year_to" value="{{.YearTo}}" min="{{.Info.YearMin}}" max="{{.Info.YearMax}}">
</fieldset>
<fieldset>
<legend>Квартиль</legend>
<input type="hidden" name="quartile" value="">
{{range .Quartiles}}<label><input type="checkbox" name="quartile" value="{{.Label}}"{{if .Checked}} checked{{end}}> {{.Label}}</label>
{{end}}</fieldset>
<fieldset>
<legend>Процентиль 2024</legend>
<input type="number" name="pct_min" value="{{.PctMin}}" min="0" max="100" step="1">
–
<input type="number" name="pct_max" value="{{.PctMax}}" min="0" max="100" step="1">
</fieldset>
<fieldset>
<legend>Поиск (автор/название/источник)</legend>
<input type="text" name="q" value="{{.Search}}">
</fieldset>
<fieldset>
<legend>Источник</legend>
<select name="source" multiple size="6">
{{range .Sources}}<option value="{{.Label}}"{{if .Checked}} selected{{end}}>{{.Label}}</option>
{{end}}</select>
</fieldset>
<fieldset>
<legend>Автор</legend>
<input type="text" name="author" value="{{.Author}}">
</fieldset>
<fieldset>
<legend>Сортировать по</legend>
<select name="sort">
{{range .Sorts}}<option value="{{.Key}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>
{{end}}</select>
<label><input type="radio" name="order" value="asc"{{if .Ascending}} checked{{end}}> По возрастанию</label>
<label><input type="radio" name="order" value="desc"{{if not .Ascending}} checked{{end}}> По убыванию</label>
</fieldset>
<button type="submit">Применить</button>
</form>
</aside>
<main>
<section class="kpis">
<div class="kpi">Публикаций<b>{{.KPIs.Display.Total}}</b></div>
<div class="kpi">Суммарные цитирования<b>{{.KPIs.Display.TotalCitations}}</b></div>
<div class="kpi">Средний процентиль (2024)<b>{{.KPIs.Display.MeanPercentile}}</b></div>
<div class="kpi">Чаще всего квартиль<b>{{.KPIs.Display.TopQuartile}}</b></div>
</section>

<h2>Результаты фильтрации</h2>
{{if .Truncated}}<p class="meta">Показаны первые {{len .Rows}} из {{.Total}} записей; экспорт содержит все.</p>{{end}}
<table>
<thead><tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{$cols := .Columns}}{{range .Rows}}{{$row := .}}<tr>{{range $cols}}<td>{{$row.Cell .}}</td>{{end}}</tr>
{{end}}</tbody>
</table>

<h3>Экспорт</h3>
<p>{{range .Exports}}<a href="{{.Href}}">{{.Label}}</a> {{end}}</p>

<h2>Scopus-вид</h2>
{{range .Cards}}<div class="card">
<h4>{{.Title}}</h4>
<div>{{.Authors}}</div>
<div class="meta">{{.Source}} • {{.Year}} • {{if .Quartile}}{{.Quartile}}{{else}}—{{end}} • Процентиль {{if .Percentile}}{{.Percentile}}{{else}}—{{end}}</div>
<div class="meta">Цитирования: {{.CitedBy}}{{if .Link}} • <a href="{{.Link}}" target="_blank" rel="noopener">Открыть</a>{{end}}</div>
</div>
{{else}}<p class="meta">Нет публикаций для выбранных фильтров.</p>
{{end}}

<h2>Топ источники</h2>
<table>
<thead><tr><th>Источник</th><th>Публикаций</th><th>Цитирования</th></tr></thead>
<tbody>{{range .TopSources}}<tr><td>{{.Key}}</td><td>{{.PubCount}}</td><td>{{.Cites}}</td></tr>
{{end}}</tbody>
</table>

<h2>Топ авторы</h2>
<table>
<thead><tr><th>Автор</th><th>Публикаций</th><th>Цитирования</th></tr></thead>
<tbody>{{range .TopAuthors}}<tr><td>{{.Key}}</td><td>{{.PubCount}}</td><td>{{.Cites}}</td></tr>
{{end}}</tbody>
</table>
</main>
</div>
{{end}}
</body>
</html>
`
