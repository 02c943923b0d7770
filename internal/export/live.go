package export

import (
	"encoding/json"
	"html/template"
	"io"

	"github.com/san-kum/algoscope/internal/trace"
)

// The live format embeds the whole trace plus a minimal playback
// controller, so the artifact replays without any server. The drawer
// dispatches on snapshot kind, mirroring the canvas renderer.
var liveTmpl = template.Must(template.New("live").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { background: #0a0a0a; color: #ddd; font-family: monospace; margin: 2em; }
#view { display: block; margin: 1em 0; background: #111; }
#controls button { background: #222; color: #ddd; border: 1px solid #555; padding: 4px 12px; margin-right: 4px; font-family: monospace; }
#note { color: #aaa; min-height: 1.2em; }
#meta { color: #fc6; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<canvas id="view" width="640" height="280"></canvas>
<p id="note"></p>
<p id="meta"></p>
<div id="controls">
<button onclick="player.reset()">&#9198;</button>
<button onclick="player.back()">&#9194;</button>
<button onclick="player.toggle()" id="playbtn">&#9654;</button>
<button onclick="player.fwd()">&#9193;</button>
<input type="range" id="seek" min="0" value="0" oninput="player.seek(this.value)">
</div>
<script>
const tr = {{.TraceJSON}};
const KIND_ARRAY = 0, KIND_TREE = 1, KIND_GRAPH = 2;
const player = {
  i: 0, timer: null, speed: {{.Speed}},
  step() { return tr.steps[this.i]; },
  draw() {
    const s = this.step();
    const cv = document.getElementById("view");
    const ctx = cv.getContext("2d");
    ctx.fillStyle = "#111";
    ctx.fillRect(0, 0, cv.width, cv.height);
    ctx.textAlign = "center";
    const hl = new Set(s.highlights || []);
    const snap = s.snapshot;
    if (snap.kind === KIND_ARRAY) this.drawArray(ctx, cv, snap, hl);
    else if (snap.kind === KIND_TREE) this.drawTree(ctx, cv, snap, hl);
    else if (snap.kind === KIND_GRAPH) this.drawGraph(ctx, cv, snap, hl);
    else this.drawHash(ctx, cv, snap, hl);
    document.getElementById("note").textContent =
      "step " + s.index + "/" + (tr.steps.length - 1) + " · " + (s.annotation || "");
    document.getElementById("meta").textContent =
      "comparisons: " + s.counters.comparisons + " · swaps: " + s.counters.swaps;
    document.getElementById("seek").value = this.i;
  },
  drawArray(ctx, cv, snap, hl) {
    const arr = snap.array || [];
    if (!arr.length) return;
    const max = Math.max(1, ...arr.map(Math.abs));
    const bw = cv.width / arr.length;
    arr.forEach((v, i) => {
      const h = Math.max(2, Math.abs(v) / max * (cv.height - 40));
      ctx.fillStyle = hl.has(i) ? "#fc3" : "#0c6";
      ctx.fillRect(i * bw + 2, cv.height - 20 - h, bw - 4, h);
      ctx.fillStyle = "#ddd";
      ctx.fillText(v, i * bw + bw / 2, cv.height - 6);
    });
  },
  drawTree(ctx, cv, snap, hl) {
    const nodes = snap.nodes || [];
    if (!nodes.length || snap.root < 0) return;
    const pos = {};
    let next = 0;
    const layout = (id, depth) => {
      if (id < 0) return;
      layout(nodes[id].left, depth + 1);
      pos[id] = { x: next++, y: depth };
      layout(nodes[id].right, depth + 1);
    };
    layout(snap.root, 0);
    let maxDepth = 1;
    for (const id in pos) maxDepth = Math.max(maxDepth, pos[id].y);
    const px = id => (pos[id].x + 0.5) / next * cv.width;
    const py = id => 24 + pos[id].y / maxDepth * (cv.height - 60);
    ctx.strokeStyle = "#555";
    nodes.forEach(nd => {
      if (!(nd.id in pos)) return;
      [nd.left, nd.right].forEach(ch => {
        if (ch < 0 || !(ch in pos)) return;
        ctx.beginPath();
        ctx.moveTo(px(nd.id), py(nd.id));
        ctx.lineTo(px(ch), py(ch));
        ctx.stroke();
      });
    });
    nodes.forEach(nd => {
      if (!(nd.id in pos)) return;
      ctx.beginPath();
      ctx.arc(px(nd.id), py(nd.id), 12, 0, 2 * Math.PI);
      ctx.fillStyle = hl.has(nd.id) ? "#fc3" : "#0c6";
      ctx.fill();
      ctx.fillStyle = "#022";
      ctx.fillText(nd.value, px(nd.id), py(nd.id) + 3);
    });
  },
  drawGraph(ctx, cv, snap, hl) {
    const vs = snap.vertices || [];
    if (!vs.length) return;
    const cx = cv.width / 2, cy = cv.height / 2, r = Math.min(cx, cy) - 26;
    const px = i => cx + r * Math.cos(2 * Math.PI * i / vs.length - Math.PI / 2);
    const py = i => cy + r * Math.sin(2 * Math.PI * i / vs.length - Math.PI / 2);
    ctx.strokeStyle = "#555";
    (snap.edges || []).forEach(e => {
      ctx.beginPath();
      ctx.moveTo(px(e.from), py(e.from));
      ctx.lineTo(px(e.to), py(e.to));
      ctx.stroke();
    });
    vs.forEach((v, i) => {
      ctx.beginPath();
      ctx.arc(px(i), py(i), 13, 0, 2 * Math.PI);
      ctx.fillStyle = v.visited ? "#0c6" : v.frontier ? "#fc3" : "#333";
      ctx.fill();
      if (hl.has(v.id)) { ctx.strokeStyle = "#f66"; ctx.lineWidth = 2; ctx.stroke(); ctx.lineWidth = 1; }
      ctx.fillStyle = "#ddd";
      ctx.fillText(v.id, px(i), py(i) + 3);
    });
  },
  drawHash(ctx, cv, snap, hl) {
    const buckets = snap.buckets || [];
    if (!buckets.length) return;
    const bw = cv.width / buckets.length;
    const cell = 18;
    buckets.forEach((keys, b) => {
      ctx.strokeStyle = hl.has(b) ? "#fc3" : "#555";
      ctx.strokeRect(b * bw + 2, cv.height - 38, bw - 4, 18);
      ctx.fillStyle = "#777";
      ctx.fillText(b, b * bw + bw / 2, cv.height - 8);
      (keys || []).forEach((k, j) => {
        const y = cv.height - 42 - (j + 1) * cell;
        ctx.fillStyle = hl.has(b) ? "#fc3" : "#0c6";
        ctx.fillRect(b * bw + 2, y, bw - 4, cell - 2);
        ctx.fillStyle = "#022";
        ctx.fillText(k, b * bw + bw / 2, y + 12);
      });
    });
  },
  seek(i) { this.i = Math.min(Math.max(0, i | 0), tr.steps.length - 1); this.draw(); },
  fwd() { this.pause(); this.seek(this.i + 1); },
  back() { this.pause(); this.seek(this.i - 1); },
  reset() { this.pause(); this.seek(0); },
  toggle() { this.timer ? this.pause() : this.play(); },
  play() {
    document.getElementById("playbtn").innerHTML = "&#9208;";
    this.timer = setInterval(() => {
      if (this.i >= tr.steps.length - 1) { this.pause(); return; }
      this.seek(this.i + 1);
    }, 1000 / this.speed);
  },
  pause() {
    document.getElementById("playbtn").innerHTML = "&#9654;";
    if (this.timer) { clearInterval(this.timer); this.timer = null; }
  },
};
document.getElementById("seek").max = tr.steps.length - 1;
player.draw();
</script>
</body>
</html>
`))

func exportLive(tr *trace.Trace, dest string, opts Options) error {
	raw, err := json.Marshal(tr)
	if err != nil {
		return err
	}
	return writeAtomic(dest, func(w io.Writer) error {
		return liveTmpl.Execute(w, struct {
			Title     string
			TraceJSON template.JS
			Speed     float64
		}{Title: opts.Title, TraceJSON: template.JS(raw), Speed: opts.Speed})
	})
}
