package web

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/vcfcsv/internal/application"
)

// uploadPage renders the upload form. maxSize is shown as a hint only; the
// handler enforces the limit.
func uploadPage(maxSize int64) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, pageHead); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<p class="hint">Maximum file size: `+
			templ.EscapeString(application.FormatSize(maxSize))+`</p>`); err != nil {
			return err
		}
		_, err := io.WriteString(w, pageForm)
		return err
	})
}

const pageHead = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>vCard to CSV</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 36rem; margin: 4rem auto; padding: 0 1rem; color: #1f2937; }
h1 { font-size: 1.5rem; }
.hint { color: #6b7280; font-size: .875rem; }
form { display: flex; flex-direction: column; gap: 1rem; margin-top: 1.5rem; }
button { align-self: flex-start; padding: .5rem 1.25rem; border: 0; border-radius: .375rem; background: #2563eb; color: #fff; cursor: pointer; }
</style>
</head>
<body>
<h1>vCard to CSV</h1>
<p>Upload a <code>.vcf</code> export. The contacts come back as a semicolon separated CSV file with Turkish phone numbers normalized.</p>
`

const pageForm = `<form method="post" action="/api/convert" enctype="multipart/form-data">
<input type="file" name="file" accept=".vcf,text/vcard" required>
<button type="submit">Convert</button>
</form>
</body>
</html>
`
