package web

import (
	"bytes"
	"html/template"

	"github.com/jaminalder/tictactoe-history/internal/domain"
)

type templates struct {
	game  *template.Template
	board *template.Template
	index *template.Template
}

func funcs() template.FuncMap {
	return template.FuncMap{
		"iter": func(n int) []int {
			a := make([]int, n)
			for i := range a {
				a[i] = i
			}
			return a
		},
		"cellSymbol": func(c domain.Cell) string { return c.String() },
		"add":        func(a, b int) int { return a + b },
		"mul":        func(a, b int) int { return a * b },
	}
}

func loadTemplates() *templates {
	base := template.Must(template.New("base").Funcs(funcs()).Parse(`<!doctype html><html><head>
<meta charset="utf-8"/>
<title>Tic-tac-toe</title>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<script src="https://unpkg.com/htmx.org@1.9.12/dist/ext/sse.js"></script>
<style>` + styles + `</style>
</head><body>{{template "content" .}}</body></html>`))
	// The game fragment lives in the base set so the page can include it.
	template.Must(base.New("board").Parse(gameTemplate))
	index := template.Must(template.Must(base.Clone()).New("content").Parse(`<h1>Tic-tac-toe</h1><form action="/game" method="post"><button>New game</button></form>`))
	game := template.Must(template.Must(base.Clone()).New("content").Parse(`
<div hx-ext="sse" sse-connect="/game/{{.ID}}/events" sse-swap="game" hx-target="#game" hx-swap="outerHTML">
  {{template "board" .}}
</div>`))
	// Standalone fragment used for htmx responses and broadcasts
	board := template.Must(template.New("board_only").Funcs(funcs()).Parse(gameTemplate))
	return &templates{game: game, board: board, index: index}
}

// renderTemplate executes t, or the named template of t's set when name is set.
func renderTemplate(t *template.Template, name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	if name == "" {
		err = t.Execute(&buf, data)
	} else {
		err = t.ExecuteTemplate(&buf, name, data)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

const gameTemplate = `
<div id="game" class="game">
  <div class="game-board">
    <div class="status">{{.View.Status}}</div>
    {{range $r := iter 3}}
    <div class="board-row">
      {{range $c := iter 3}}{{$cell := index $.View.Cells (add (mul $r 3) $c)}}
      <form hx-post="/game/{{$.ID}}/play" hx-target="#game" hx-swap="outerHTML" method="post">
        <input type="hidden" name="cell" value="{{$cell.Index}}">
        <button type="submit" class="square{{if $cell.Highlight}} winning{{end}}">{{cellSymbol $cell.Value}}</button>
      </form>
      {{end}}
    </div>
    {{end}}
  </div>
  <div class="game-info">
    <form hx-post="/game/{{.ID}}/order" hx-target="#game" hx-swap="outerHTML" method="post">
      <button type="submit" class="order">{{if .View.Descending}}Sort ascending{{else}}Sort descending{{end}}</button>
    </form>
    <ol class="moves">
      {{range .View.Entries}}
      <li>{{if .Current}}<span class="current">{{.Label}}</span>{{else}}
        <form hx-post="/game/{{$.ID}}/jump" hx-target="#game" hx-swap="outerHTML" method="post">
          <input type="hidden" name="move" value="{{.Move}}">
          <button type="submit">{{.Label}}</button>
        </form>{{end}}
      </li>
      {{end}}
    </ol>
  </div>
</div>
`

const styles = `
.game { display: flex; gap: 2rem; font-family: sans-serif; }
.board-row { display: flex; }
.board-row form { margin: 0; }
.square { width: 3rem; height: 3rem; font-size: 1.5rem; font-weight: bold; margin: -1px 0 0 -1px; background: #fff; border: 1px solid #999; }
.square.winning { background: #ffe066; }
.status { margin-bottom: .5rem; }
.moves { padding-left: 1.5rem; list-style: none; }
.moves form { margin: 0; }
`

type gameData struct {
	ID   string
	View domain.View
}
