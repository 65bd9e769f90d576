package handlers

const notFoundPage = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>Not Found</title>
  <style>
    body { background: #000; color: #00cc88; font-family: 'Courier New', monospace; display: flex; flex-direction: column; align-items: center; justify-content: center; height: 100vh; margin: 0; }
    h1 { font-size: 4rem; font-weight: 700; margin: 0; }
    .subtitle { font-size: 1.2rem; margin-top: 1rem; color: #009966; }
    .prompt a { color: #00cc88; text-decoration: none; }
  </style>
</head>
<body>
  <h1>NOT FOUND</h1>
  <p class="subtitle">This short link does not exist</p>
  <p class="prompt"><a href="/shorten">Shorten an URL &gt;</a></p>
</body>
</html>`

const expiredPage = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>Expired</title>
  <style>
    body { background: #000; color: #00cc88; font-family: 'Courier New', monospace; display: flex; flex-direction: column; align-items: center; justify-content: center; height: 100vh; margin: 0; }
    h1 { font-size: 4rem; font-weight: 700; margin: 0; }
    p { font-size: 1.2rem; margin-top: 1rem; }
  </style>
</head>
<body>
  <h1>EXPIRED</h1>
  <p>This short link is no longer active</p>
</body>
</html>`

const shortenPage = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>Shorten an URL</title>
  <style>
    body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif; margin: 2rem; background: #111; color: #e0e0e0; }
    h1 { margin-bottom: 1rem; font-weight: 700; font-size: 1.8rem; }
    form { background: #1a1a1a; padding: 1.5rem; border-radius: 6px; max-width: 500px; }
    label { display: block; margin-bottom: 0.5rem; font-weight: 600; }
    input { width: 100%; padding: 0.5rem; margin-bottom: 1rem; border: 1px solid #444; border-radius: 4px; font-size: 1rem; box-sizing: border-box; background: #222; color: #e0e0e0; }
    button { background: #00cc88; color: #111; border: none; padding: 0.6rem 1.5rem; border-radius: 4px; font-size: 1rem; cursor: pointer; font-weight: 600; }
    #result { margin-top: 1rem; max-width: 500px; }
    .success { background: rgba(0,204,136,0.1); border: 1px solid #00cc88; padding: 1rem; border-radius: 6px; }
    .success a { color: #00cc88; font-weight: 600; word-break: break-all; }
    .error { background: rgba(204,0,0,0.1); border: 1px solid #cc0000; padding: 1rem; border-radius: 6px; color: #ff6666; }
    nav a { color: #00cc88; text-decoration: none; }
  </style>
</head>
<body>
  <nav><a href="/stats">&larr; Stats</a></nav>
  <h1>Shorten an URL</h1>
  <form id="shorten-form">
    <label for="url">URL to shorten</label>
    <input type="url" id="url" name="url" placeholder="https://example.com" required>
    <label for="vanity">Custom short code (optional)</label>
    <input type="text" id="vanity" name="vanity" placeholder="my-link" maxlength="15">
    <label for="days_active">Days active (optional)</label>
    <input type="number" id="days_active" name="days_active" min="1">
    <button type="submit">Shorten</button>
  </form>
  <div id="result"></div>
  <script>
    document.getElementById('shorten-form').addEventListener('submit', function(e) {
      e.preventDefault();
      var resultDiv = document.getElementById('result');
      resultDiv.innerHTML = '';
      var body = { url: document.getElementById('url').value };
      var vanity = document.getElementById('vanity').value;
      var daysActive = document.getElementById('days_active').value;
      if (vanity) body.vanity = vanity;
      if (daysActive) body.days_active = parseInt(daysActive, 10);
      fetch('/add', {
        method: 'POST',
        headers: { 'Content-Type': 'application/json' },
        body: JSON.stringify(body)
      })
        .then(function(res) { return res.json(); })
        .then(function(result) {
          if (!result.success) {
            resultDiv.innerHTML = '<div class="error">' + result.message + '</div>';
          } else {
            resultDiv.innerHTML = '<div class="success">Shortened: <a href="' + result.data.url + '" target="_blank" rel="noopener">' + result.data.url + '</a></div>';
          }
        })
        .catch(function() {
          resultDiv.innerHTML = '<div class="error">Something went wrong. Please try again.</div>';
        });
    });
  </script>
</body>
</html>`
