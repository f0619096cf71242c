package admin

// Admin pages in HTML format

// BaseTemplate is the layout shared by every admin page
const BaseTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <meta name="robots" content="noindex">
    <title>{{.Title}} · PromptGallery Admin</title>
    <style>
        body { margin: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Arial, sans-serif; background: #0f0f0f; color: #fff; }
        .container { max-width: 1100px; margin: 0 auto; padding: 32px 20px; }
        header { display: flex; justify-content: space-between; align-items: center; margin-bottom: 24px; }
        a { color: #a855f7; }
        .grid { display: grid; grid-template-columns: repeat(auto-fill, minmax(220px, 1fr)); gap: 16px; }
        .card { background: #1a1a1a; border: 1px solid #2a2a2a; border-radius: 12px; overflow: hidden; }
        .card img { width: 100%; aspect-ratio: 1; object-fit: cover; display: block; }
        .card .body { padding: 12px; font-size: 14px; color: #aaa; }
        .actions { display: flex; gap: 8px; margin-top: 8px; }
        label { display: block; margin: 16px 0 4px; color: #ccc; font-size: 14px; }
        input, textarea { width: 100%; padding: 10px; background: #111; color: #fff; border: 1px solid #333; border-radius: 8px; }
        button { padding: 8px 16px; border: 0; border-radius: 8px; background: #6366f1; color: #fff; cursor: pointer; }
        button.danger { background: #b91c1c; }
        .error { background: #450a0a; border: 1px solid #7f1d1d; padding: 12px; border-radius: 8px; margin-bottom: 16px; }
        .muted { color: #777; font-size: 13px; }
    </style>
</head>
<body>
<div class="container">
{{.Content}}
</div>
</body>
</html>
`

// ManageTemplate lists records with edit and delete controls
const ManageTemplate = `
<header>
    <h1>Manage Gallery</h1>
    <a href="{{.Prefix}}/upload">+ New Upload</a>
</header>
<p class="muted">{{len .Images}} of {{.Total}} images</p>
{{if .Images}}
<div class="grid">
    {{range .Images}}
    <div class="card">
        <img src="{{.DisplayThumbURL}}" alt="admin preview" loading="lazy">
        <div class="body">
            <div>{{.Prompt}}</div>
            <div class="actions">
                <a href="{{$.Prefix}}/edit/{{.ID}}">Edit</a>
                <form method="post" action="{{$.Prefix}}/delete/{{.ID}}">
                    <button class="danger" type="submit">Delete</button>
                </form>
            </div>
        </div>
    </div>
    {{end}}
</div>
{{else}}
<p>No images yet.</p>
{{end}}
{{if .HasMore}}
<p><a href="{{.Prefix}}/manage?page={{.NextPage}}">Load More Images</a></p>
{{end}}
`

// UploadTemplate records a finished direct upload
const UploadTemplate = `
<header>
    <h1>Upload</h1>
    <a href="{{.Prefix}}/manage">Back to gallery</a>
</header>
{{if .Error}}<div class="error">{{.Error}}</div>{{end}}
<p class="muted">Request a signature from <code>POST /api/upload</code>, send the file to the media host, then save the result here.</p>
<form method="post" action="{{.Prefix}}/upload">
    <label for="public_id">Public ID</label>
    <input id="public_id" name="public_id" value="{{.Form.PublicID}}" required>
    <label for="url">Image URL</label>
    <input id="url" name="url" value="{{.Form.URL}}" required>
    <label for="thumb_url">Thumbnail URL</label>
    <input id="thumb_url" name="thumb_url" value="{{.Form.ThumbURL}}">
    <label for="width">Width</label>
    <input id="width" name="width" value="{{.Form.Width}}" inputmode="numeric">
    <label for="height">Height</label>
    <input id="height" name="height" value="{{.Form.Height}}" inputmode="numeric">
    <label for="prompt">Prompt</label>
    <textarea id="prompt" name="prompt" rows="6" required>{{.Form.Prompt}}</textarea>
    <label for="tags">Tags (comma separated)</label>
    <input id="tags" name="tags" value="{{.Form.Tags}}">
    <p><button type="submit">Save</button></p>
</form>
`

// EditTemplate edits prompt and tags of one record
const EditTemplate = `
<header>
    <h1>Edit Image</h1>
    <a href="{{.Prefix}}/manage">Back to gallery</a>
</header>
{{if .Error}}<div class="error">{{.Error}}</div>{{end}}
<img src="{{.Image.URL}}" alt="preview" style="max-width: 320px; border-radius: 12px;">
<form method="post" action="{{.Prefix}}/edit/{{.Image.ID}}">
    <label for="prompt">Prompt</label>
    <textarea id="prompt" name="prompt" rows="6" required>{{.Form.Prompt}}</textarea>
    <label for="tags">Tags (comma separated)</label>
    <input id="tags" name="tags" value="{{.Form.Tags}}">
    <p><button type="submit">Save Changes</button></p>
</form>
`
