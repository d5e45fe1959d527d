package remote

// viewerHTML is the single-page viewer served at /. Frames arrive as JSON
// over the /ws websocket, possibly coalesced with newline separators, and
// the page paints the newest one into a <pre>.
const viewerHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>gridterm</title>
<style>
  body { background: #111; color: #ccc; font-family: monospace; margin: 1rem; }
  #status { color: #888; margin-bottom: .5rem; }
  #screen { background: #000; color: #ddd; padding: .5rem; line-height: 1.15; display: inline-block; }
</style>
</head>
<body>
<div id="status">connecting...</div>
<pre id="screen"></pre>
<script>
const status = document.getElementById("status");
const screen = document.getElementById("screen");
const proto = location.protocol === "https:" ? "wss://" : "ws://";
const ws = new WebSocket(proto + location.host + "/ws");

ws.onopen = () => { status.textContent = "connected"; };
ws.onclose = () => { status.textContent = "disconnected"; };
ws.onerror = () => { status.textContent = "connection error"; };

ws.onmessage = (ev) => {
  // JSON escapes newlines inside strings, so splitting on raw newlines
  // separates coalesced frames safely. Only the newest frame matters.
  const parts = ev.data.split("\n");
  const frame = JSON.parse(parts[parts.length - 1]);
  screen.textContent = frame.rows.join("\n");
  status.textContent = "frame " + frame.seq + " (" + frame.width + "x" + frame.height + ")";
};
</script>
</body>
</html>
`
