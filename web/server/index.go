package server

// indexHTML is the whole preview frontend. Keeping it inline means the
// binary serves a working page with no asset directory to deploy next
// to it.
const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>cg renderer</title>
<style>
  body { margin: 0; background: #1b1d23; color: #d6d8de; font: 14px/1.5 system-ui, sans-serif; }
  header { display: flex; justify-content: space-between; align-items: baseline;
           padding: 10px 16px; border-bottom: 1px solid #2c2f38; }
  header h1 { margin: 0; font-size: 16px; font-weight: 600; }
  header #system { color: #8b8f9a; font-size: 12px; }
  #controls { display: flex; flex-wrap: wrap; gap: 10px; align-items: end; padding: 12px 16px; }
  #controls label { display: flex; flex-direction: column; gap: 3px; font-size: 12px; color: #8b8f9a; }
  #controls input, #controls select { background: #262932; color: #d6d8de;
           border: 1px solid #3a3e4a; border-radius: 4px; padding: 5px 8px; font-size: 13px; }
  #controls input { width: 70px; }
  button { background: #3b6ea5; color: #fff; border: 0; border-radius: 4px;
           padding: 7px 16px; font-size: 13px; cursor: pointer; }
  button:disabled { background: #2c2f38; color: #6a6e78; cursor: default; }
  #view { padding: 0 16px 16px; }
  #render { max-width: 100%; border: 1px solid #2c2f38; border-radius: 4px;
            background: #14161b; cursor: crosshair; display: block; }
  #status { padding: 6px 0; font-size: 13px; color: #8b8f9a; min-height: 20px; }
  #inspect { font: 12px/1.6 ui-monospace, monospace; color: #9aa0ac; white-space: pre; }
  .err { color: #e06c75; }
</style>
</head>
<body>
<header>
  <h1>cg renderer</h1>
  <span id="system"></span>
</header>
<div id="controls">
  <label>scene <select id="scene"></select></label>
  <label>resolution <input id="resolution" type="number" value="360" min="16" max="1280"></label>
  <label>samples <input id="samples" type="number" value="64" min="1" max="1024"></label>
  <label>shader <select id="shader">
    <option>raytrace</option><option>eyelight</option><option>normal</option>
    <option>texcoord</option><option>color</option><option>toon</option><option>snow</option>
  </select></label>
  <button id="start">Render</button>
  <button id="stop" disabled>Stop</button>
</div>
<div id="view">
  <div id="status">pick a scene and hit render</div>
  <img id="render" alt="">
  <div id="inspect"></div>
</div>
<script>
var source = null;

function el(id) { return document.getElementById(id); }
function setStatus(text, isError) {
  var s = el('status');
  s.textContent = text;
  s.className = isError ? 'err' : '';
}

fetch('/api/scenes').then(function (r) { return r.json(); }).then(function (scenes) {
  var select = el('scene');
  scenes.forEach(function (s) {
    var opt = document.createElement('option');
    opt.value = s.name;
    opt.textContent = s.displayName;
    select.appendChild(opt);
  });
});

fetch('/api/system').then(function (r) { return r.json(); }).then(function (info) {
  var gb = function (b) { return (b / (1024 * 1024 * 1024)).toFixed(1); };
  el('system').textContent = info.cpuModel + ' | ' + info.cores + ' cores | ' +
    gb(info.memoryUsed) + '/' + gb(info.memoryTotal) + ' GB';
});

function stopRender() {
  if (source) { source.close(); source = null; }
  el('start').disabled = false;
  el('stop').disabled = true;
}

el('start').addEventListener('click', function () {
  stopRender();
  var query = 'scene=' + encodeURIComponent(el('scene').value) +
    '&resolution=' + el('resolution').value +
    '&samples=' + el('samples').value +
    '&shader=' + encodeURIComponent(el('shader').value);
  source = new EventSource('/api/render?' + query);
  el('start').disabled = true;
  el('stop').disabled = false;
  setStatus('rendering...');

  source.addEventListener('pass', function (e) {
    var update = JSON.parse(e.data);
    el('render').src = 'data:image/png;base64,' + update.imageData;
    setStatus('pass ' + update.pass + '/' + update.total + ' | ' +
      update.width + 'x' + update.height + ' | ' + (update.elapsedMs / 1000).toFixed(1) + 's');
  });
  source.addEventListener('complete', function () {
    setStatus(el('status').textContent + ' | done');
    stopRender();
  });
  source.addEventListener('error', function (e) {
    if (e.data) setStatus(e.data, true);
    else setStatus('connection lost', true);
    stopRender();
  });
});

el('stop').addEventListener('click', function () {
  setStatus('stopped');
  stopRender();
});

el('render').addEventListener('click', function (e) {
  var rect = e.target.getBoundingClientRect();
  if (rect.width === 0 || rect.height === 0) return;
  var u = (e.clientX - rect.left) / rect.width;
  var v = (e.clientY - rect.top) / rect.height;
  var query = 'scene=' + encodeURIComponent(el('scene').value) +
    '&u=' + u.toFixed(4) + '&v=' + v.toFixed(4);
  fetch('/api/inspect?' + query).then(function (r) { return r.json(); }).then(function (hit) {
    var fmt = function (a) {
      return '[' + a.map(function (x) { return x.toFixed(3); }).join(', ') + ']';
    };
    if (!hit.hit) { el('inspect').textContent = 'miss'; return; }
    el('inspect').textContent =
      'instance ' + hit.instance + ' element ' + hit.element +
      ' distance ' + hit.distance.toFixed(3) + '\n' +
      'position ' + fmt(hit.position) + ' normal ' + fmt(hit.normal) + '\n' +
      'color ' + fmt(hit.color) + ' emission ' + fmt(hit.emission);
  });
});
</script>
</body>
</html>
`
