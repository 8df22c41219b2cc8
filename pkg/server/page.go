package server

import (
	"html/template"
	"net/http"

	"github.com/willbeason/webtree/pkg/notify"
	"github.com/willbeason/webtree/pkg/tree"
)

type pageControl struct {
	tree.Definition
	Value float64
}

type pageData struct {
	Controls  []pageControl
	DismissMS int64
}

// Page handles GET /, the slider page.
func (s *Server) Page(w http.ResponseWriter, _ *http.Request) {
	values := s.Controls().Values()

	data := pageData{DismissMS: notify.DefaultTimeout.Milliseconds()}
	for _, d := range tree.Definitions {
		data.Controls = append(data.Controls, pageControl{Definition: d, Value: values[d.Name]})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		s.logger.Error("page render failed", "error", err)
	}
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8" />
<meta name="viewport" content="width=device-width, initial-scale=1" />
<title>Fractal Tree</title>
<style>
  html, body { margin: 0; height: 100%; font-family: sans-serif; }
  #tree { position: fixed; inset: 0; width: 100%; height: 100%; }
  #controls { position: fixed; top: 1em; left: 1em; background: #ffffffd0; padding: 0.5em 1em; }
  #controls label { display: block; margin-top: 0.5em; }
  #notification { position: fixed; bottom: 1em; left: 50%; transform: translateX(-50%); background: #333; color: #fff; padding: 0.5em 1em; }
</style>
</head>
<body>
<img id="tree" alt="fractal tree" />
<div id="controls">
{{- range .Controls}}
  <label title="{{.Description}}">{{.Label}}
    <input type="range" id="{{.Name}}" min="{{.Min}}" max="{{.Max}}" step="{{.Step}}" value="{{.Value}}" />
    <button data-reset="{{.Name}}">Reset</button>
  </label>
{{- end}}
  <p>
    <button id="resetAllControls">Reset all</button>
    <button id="copyToClipboard">Copy to clipboard</button>
    <button id="saveAsImage">Save as image</button>
  </p>
</div>
<div id="notification" hidden></div>
<script>
const img = document.querySelector('#tree')
const notification = document.querySelector('#notification')

const size = () => 'w=' + document.body.clientWidth + '&h=' + document.body.clientHeight

const draw = () => {
  img.src = '/tree.png?' + size() + '&t=' + Date.now()
}

const show = (controls) => {
  for (const [name, value] of Object.entries(controls)) {
    document.getElementById(name).value = value
  }
}

const send = (method, url) =>
  fetch(url, { method }).then(r => r.ok ? r.json() : Promise.reject(r.statusText))
    .then(resp => { show(resp.controls); draw() })

document.querySelectorAll('input[type=range]').forEach(el =>
  el.addEventListener('input', () =>
    send('PUT', '/api/controls/' + el.id + '?value=' + encodeURIComponent(el.value))))

document.querySelectorAll('button[data-reset]').forEach(el =>
  el.addEventListener('click', () => send('POST', '/api/controls/' + el.dataset.reset + '/reset')))

document.querySelector('#resetAllControls').addEventListener('click', () =>
  send('POST', '/api/controls/reset'))

const notify = (text) => {
  notification.textContent = text
  notification.removeAttribute('hidden')
  setTimeout(() => notification.setAttribute('hidden', true), {{.DismissMS}})
}

document.querySelector('#saveAsImage').addEventListener('click', () => {
  location.href = '/image.png?' + size()
})

img.addEventListener('error', () =>
  fetch('/api/notification').then(r => r.status === 200 ? r.json() : null)
    .then(n => { if (n) notify(n.message) }))

document.querySelector('#copyToClipboard').addEventListener('click', () => {
  if (!navigator.clipboard || typeof ClipboardItem === 'undefined') {
    notify('Unable to copy to Clipboard! Does your browser support the Clipboard API?')
    return
  }
  fetch(img.src).then(r => r.blob())
    .then(blob => navigator.clipboard.write([new ClipboardItem({ 'image/png': blob })]))
    .then(() => notify('Tree copied to Clipboard!'),
      () => notify('Unable to copy to Clipboard! The necessary permissions were not granted.'))
})

window.addEventListener('resize', draw)
draw()
</script>
</body>
</html>
`))
