// Package bridge: this file renders the built-in settings page.
package bridge

import (
	"encoding/json"

	"github.com/onyx-dot-app/onyx-desktop/config"
)

// renderSettingsPage generates the HTML for the fallback settings view.
// It embeds the current configuration state and the bridge token as
// JavaScript variables so the page can call the API directly.
func renderSettingsPage(state config.BootstrapState, token string) string {
	stateJSON, _ := json.Marshal(state)
	tokenJSON, _ := json.Marshal(token)

	return `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Onyx Settings</title>
<style>
* { margin: 0; padding: 0; box-sizing: border-box; }
body {
    font-family: -apple-system, BlinkMacSystemFont, sans-serif;
    background: #1a1a2e;
    color: #e0e0e0;
    display: flex;
    justify-content: center;
    padding-top: 10vh;
}
.panel {
    width: 480px;
}
h1 { font-size: 22px; font-weight: 600; margin-bottom: 4px; }
.subtitle { font-size: 13px; color: #8888a0; margin-bottom: 28px; }
label {
    display: block;
    font-size: 13px;
    color: #9999b0;
    margin-bottom: 6px;
}
input[type="text"] {
    width: 100%;
    padding: 9px 12px;
    background: #24243a;
    border: 1px solid #3a3a55;
    border-radius: 6px;
    color: #e0e0e0;
    font-size: 14px;
}
input[type="text"]:focus { outline: none; border-color: #6c6cf5; }
.row { display: flex; gap: 10px; margin-top: 16px; }
.btn {
    padding: 8px 18px;
    background: #6c6cf5;
    color: white;
    border: none;
    border-radius: 6px;
    font-size: 13px;
    cursor: pointer;
}
.btn:hover { background: #5a5ae0; }
.btn-secondary { background: transparent; color: #9999b0; border: 1px solid #3a3a55; }
.btn-secondary:hover { color: #e0e0e0; border-color: #6c6cf5; }
.status { margin-top: 14px; font-size: 13px; min-height: 18px; }
.status.ok { color: #7ee09a; }
.status.error { color: #f07878; }
.note {
    margin-top: 32px;
    padding: 12px 14px;
    background: #24243a;
    border-radius: 6px;
    font-size: 12px;
    color: #8888a0;
}
</style>
</head>
<body>
<div class="panel">
    <h1>Onyx</h1>
    <div class="subtitle">Desktop settings</div>

    <label for="server-url">Server URL</label>
    <input type="text" id="server-url" spellcheck="false"
           placeholder="https://cloud.onyx.app">

    <div class="row">
        <button class="btn" onclick="save()">Save</button>
        <button class="btn" id="open-btn" style="display:none" onclick="openApp()">Open Onyx</button>
        <button class="btn btn-secondary" onclick="reset()">Reset to defaults</button>
    </div>
    <div class="status" id="status"></div>

    <div class="note" id="note" style="display:none">
        No configuration file exists yet. Saving creates one.
    </div>
</div>

<script>
var state = ` + string(stateJSON) + `;
var TOKEN = ` + string(tokenJSON) + `;

document.getElementById('server-url').value = state.server_url || '';
if (!state.config_exists) {
    document.getElementById('note').style.display = 'block';
}

function setStatus(text, cls) {
    var el = document.getElementById('status');
    el.textContent = text;
    el.className = 'status ' + (cls || '');
}

function api(path, method, body) {
    return fetch(path, {
        method: method,
        headers: {
            'Content-Type': 'application/json',
            'X-Onyx-Token': TOKEN
        },
        body: body ? JSON.stringify(body) : undefined
    });
}

function save() {
    var url = document.getElementById('server-url').value.trim();
    api('/api/config/server-url', 'POST', { server_url: url }).then(function (res) {
        if (res.ok) {
            return res.json().then(function (data) {
                document.getElementById('server-url').value = data.server_url;
                document.getElementById('note').style.display = 'none';
                document.getElementById('open-btn').style.display = '';
                setStatus('Saved.', 'ok');
            });
        }
        return res.text().then(function (msg) {
            setStatus(msg || 'Save failed.', 'error');
        });
    }).catch(function () {
        setStatus('Could not reach the app.', 'error');
    });
}

function reset() {
    api('/api/config/reset', 'POST').then(function (res) {
        if (res.ok) {
            return res.json().then(function (data) {
                document.getElementById('server-url').value = data.server_url;
                setStatus('Restored defaults.', 'ok');
            });
        }
        setStatus('Reset failed.', 'error');
    }).catch(function () {
        setStatus('Could not reach the app.', 'error');
    });
}

function openApp() {
    api('/api/action', 'POST', { id: 'new_chat' }).catch(function () {});
}

document.getElementById('server-url').addEventListener('keydown', function (e) {
    if (e.key === 'Enter') { save(); }
});
</script>
</body>
</html>`
}
