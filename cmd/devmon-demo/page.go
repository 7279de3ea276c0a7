package main

// demoPage is the embedded demo page. Its inline client mirrors the wire
// format in pkg/protocol: a 4-byte frame header followed by a varint
// payload. Reports are sent on resize, orientationchange and scroll.
const demoPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>devmon demo</title>
<style>
  body { font-family: sans-serif; margin: 2rem; }
  code { background: #eee; padding: 0.1rem 0.3rem; }
</style>
</head>
<body>
<h1>devmon demo</h1>
<p>Resize this window or rotate your device. The server logs every
size-class transition; metrics are on <code>/metrics</code>.</p>
<p id="status">connecting…</p>
<script>
(function () {
  var FRAME_HELLO = 0x00, FRAME_REPORT = 0x01;
  var FLAG_COALESCED = 0x01;
  var KIND_RESIZE = 0x01, KIND_ORIENTATION = 0x02, KIND_SCROLL = 0x03;
  var VERSION = 1;

  function uvarint(out, v) {
    while (v >= 0x80) { out.push((v & 0x7f) | 0x80); v = Math.floor(v / 128); }
    out.push(v);
  }

  function svarint(out, v) {
    uvarint(out, v < 0 ? -2 * v - 1 : 2 * v);
  }

  function touch() {
    return ("ontouchstart" in window) || navigator.maxTouchPoints > 0;
  }

  function angle() {
    if (screen.orientation && typeof screen.orientation.angle === "number") {
      return screen.orientation.angle;
    }
    return window.orientation || 0;
  }

  function report(kind) {
    var out = [kind];
    uvarint(out, window.innerWidth);
    uvarint(out, window.innerHeight);
    uvarint(out, Math.max(0, Math.round(window.scrollY || 0)));
    uvarint(out, Math.max(0, Math.round(window.scrollX || 0)));
    svarint(out, angle());
    out.push(touch() ? 1 : 0);
    return out;
  }

  function frame(type, payload, flags) {
    var buf = new Uint8Array(4 + payload.length);
    buf[0] = type;
    buf[1] = flags || 0;
    buf[2] = payload.length >> 8;
    buf[3] = payload.length & 0xff;
    buf.set(payload, 4);
    return buf;
  }

  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(proto + location.host + "/devmon/ws");
  ws.binaryType = "arraybuffer";

  ws.onopen = function () {
    document.getElementById("status").textContent = "connected";
    ws.send(frame(FRAME_HELLO, [VERSION].concat(report(KIND_RESIZE))));
  };

  ws.onclose = function () {
    document.getElementById("status").textContent = "disconnected";
  };

  function send(kind, flags) {
    if (ws.readyState === WebSocket.OPEN) {
      ws.send(frame(FRAME_REPORT, report(kind), flags));
    }
  }

  var pending = null;
  window.addEventListener("resize", function () {
    // Coalesce resize storms into one report per frame.
    if (pending) return;
    pending = requestAnimationFrame(function () {
      pending = null;
      send(KIND_RESIZE, FLAG_COALESCED);
    });
  });
  window.addEventListener("orientationchange", function () { send(KIND_ORIENTATION); });
  window.addEventListener("scroll", function () { send(KIND_SCROLL); }, { passive: true });
})();
</script>
</body>
</html>
`
