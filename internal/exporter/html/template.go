package html

// APIReportTemplate renders every documented page on a single HTML page
const APIReportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Namespace}} API - {{.AnalysisDate}}</title>
    <style>
        * {
            margin: 0;
            padding: 0;
            box-sizing: border-box;
        }

        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
            background: #f5f7fa;
            color: #2c3e50;
            line-height: 1.6;
        }

        .container {
            max-width: 1200px;
            margin: 0 auto;
            padding: 20px;
        }

        header {
            background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
            color: white;
            padding: 40px 20px;
            margin-bottom: 30px;
            border-radius: 8px;
            box-shadow: 0 4px 6px rgba(0, 0, 0, 0.1);
        }

        header h1 {
            font-size: 2.5em;
            margin-bottom: 10px;
        }

        header p {
            font-size: 1.1em;
            opacity: 0.9;
        }

        .summary {
            background: white;
            padding: 20px;
            border-radius: 8px;
            margin-bottom: 30px;
            box-shadow: 0 2px 4px rgba(0, 0, 0, 0.05);
        }

        .summary h2 {
            color: #667eea;
            margin-bottom: 15px;
            font-size: 1.5em;
        }

        .stats {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(200px, 1fr));
            gap: 15px;
            margin-top: 15px;
        }

        .stat-card {
            background: #f8f9fa;
            padding: 15px;
            border-radius: 6px;
            border-left: 4px solid #667eea;
        }

        .stat-card .label {
            font-size: 0.9em;
            color: #6c757d;
            margin-bottom: 5px;
        }

        .stat-card .value {
            font-size: 1.8em;
            font-weight: bold;
            color: #2c3e50;
        }

        .endpoint {
            background: white;
            margin-bottom: 20px;
            border-radius: 8px;
            overflow: hidden;
            box-shadow: 0 2px 4px rgba(0, 0, 0, 0.05);
            transition: box-shadow 0.3s ease;
        }

        .endpoint:hover {
            box-shadow: 0 4px 12px rgba(0, 0, 0, 0.1);
        }

        .endpoint-header {
            padding: 20px;
            background: #f8f9fa;
            border-bottom: 1px solid #e9ecef;
            cursor: pointer;
        }

        .endpoint-title {
            display: flex;
            align-items: center;
            gap: 15px;
            margin-bottom: 10px;
        }

        .method-badge {
            display: inline-block;
            padding: 6px 12px;
            border-radius: 4px;
            font-weight: bold;
            font-size: 0.85em;
            text-transform: uppercase;
            letter-spacing: 0.5px;
        }

        .method-get { background: #61affe; color: white; }
        .method-post { background: #49cc90; color: white; }
        .method-default { background: #6c757d; color: white; }

        .endpoint-path {
            font-size: 1.3em;
            font-weight: 600;
            color: #2c3e50;
            font-family: 'Courier New', monospace;
        }

        .endpoint-meta {
            font-size: 0.9em;
            color: #6c757d;
            margin-top: 5px;
        }

        .endpoint-summary {
            margin-top: 10px;
            color: #495057;
        }

        .endpoint-body {
            padding: 20px;
        }

        .section-title {
            font-size: 1.1em;
            font-weight: 600;
            color: #495057;
            margin-bottom: 15px;
            padding-bottom: 8px;
            border-bottom: 2px solid #e9ecef;
        }

        table {
            width: 100%;
            border-collapse: collapse;
            margin-bottom: 20px;
        }

        th {
            background: #f8f9fa;
            padding: 12px;
            text-align: left;
            font-weight: 600;
            color: #495057;
            border-bottom: 2px solid #dee2e6;
        }

        td {
            padding: 12px;
            border-bottom: 1px solid #e9ecef;
        }

        tr:hover {
            background: #f8f9fa;
        }

        .param-name {
            font-family: 'Courier New', monospace;
            color: #667eea;
            font-weight: 600;
        }

        .param-type {
            font-family: 'Courier New', monospace;
            color: #e83e8c;
        }

        .code-block {
            background: #282c34;
            color: #abb2bf;
            padding: 15px;
            border-radius: 6px;
            overflow-x: auto;
            font-family: 'Courier New', monospace;
            font-size: 0.9em;
            white-space: pre;
        }

        .page-title {
            font-size: 1.4em;
            color: #667eea;
            margin: 30px 0 15px;
            font-family: 'Courier New', monospace;
        }

        footer {
            text-align: center;
            padding: 30px 20px;
            color: #6c757d;
            margin-top: 40px;
        }

        .no-endpoints {
            text-align: center;
            padding: 60px 20px;
            color: #6c757d;
        }

        .nested-param {
            background: #fcfcfc;
        }

        .nested-param .param-name {
            color: #6c757d;
            font-size: 0.95em;
        }
    </style>
</head>
<body>
    <div class="container">
        <header>
            <h1>📘 {{.Namespace}} API</h1>
            <p>Generated on {{.AnalysisDate}}</p>
        </header>

        <div class="summary">
            <h2>Overview</h2>
            <div class="stats">
                <div class="stat-card">
                    <div class="label">Pages</div>
                    <div class="value">{{.TotalPages}}</div>
                </div>
                <div class="stat-card">
                    <div class="label">Methods</div>
                    <div class="value">{{.TotalMethods}}</div>
                </div>
                <div class="stat-card">
                    <div class="label">GET / POST</div>
                    <div class="value">{{.TotalGET}} / {{.TotalPOST}}</div>
                </div>
                <div class="stat-card">
                    <div class="label">Parameters</div>
                    <div class="value">{{.TotalParams}}</div>
                </div>
            </div>
        </div>

        {{if .Pages}}
            {{range .Pages}}
            <h2 class="page-title" id="{{.Anchor}}">{{.Path}}</h2>
            {{range .Methods}}
            <div class="endpoint">
                <div class="endpoint-header">
                    <div class="endpoint-title">
                        <span class="method-badge {{methodColor .Verb}}">{{.Verb}}</span>
                        <span class="endpoint-path">{{.Name}}</span>
                    </div>
                    <div class="endpoint-meta">
                        Class: <strong>{{.Class}}</strong> · Method: <strong>{{.Method}}</strong>
                    </div>
                    {{if .Description}}
                    <div class="endpoint-summary">{{.Description}}</div>
                    {{end}}
                </div>

                <div class="endpoint-body">
                    {{if .Params}}
                    <div class="section-title">Parameters</div>
                    <table>
                        <thead>
                            <tr>
                                <th>Name</th>
                                <th>Key</th>
                                <th>Description</th>
                            </tr>
                        </thead>
                        <tbody>
                            {{range .Params}}
                            <tr{{if gt .Indent 0}} class="nested-param"{{end}}>
                                <td class="param-name" style="padding-left: {{add 12 (mul .Indent 20)}}px">{{.Record.Leaf}}</td>
                                <td class="param-type">{{.Record.Key}}</td>
                                <td>{{.Record.Description}}</td>
                            </tr>
                            {{end}}
                        </tbody>
                    </table>
                    {{end}}

                    <div class="section-title">Source</div>
                    <pre class="code-block">{{.Code}}</pre>
                </div>
            </div>
            {{end}}
            {{end}}
        {{else}}
            <div class="no-endpoints">
                <h3>No API methods found</h3>
                <p>Check the namespace setting and that API classes declare GET_ or POST_ methods.</p>
            </div>
        {{end}}

        <footer>
            <p>Generated by <strong>libwebdoc</strong></p>
        </footer>
    </div>
</body>
</html>
`
