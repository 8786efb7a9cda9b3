// internal/writer/report_template.go
package writer

// defaultReportTemplate is the built-in HTML report. The fitted models
// are embedded as JSON and charted client-side.
const defaultReportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{ .Title }} benchmark report</title>
<link href="https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist/css/bootstrap.min.css" rel="stylesheet">
<script src="https://cdn.jsdelivr.net/npm/chart.js@4.4.3/dist/chart.umd.min.js"></script>
</head>
<body class="bg-light">
<div class="container py-4">
  <h1 class="h3 mb-1">{{ .Title }}</h1>
  <p class="text-muted" id="meta"></p>
  <div class="card mb-4">
    <div class="card-body">
      <canvas id="weights"></canvas>
    </div>
  </div>
  <table class="table table-sm table-striped" id="models"></table>
</div>
<script>
const data = {{ .JSON }};

document.getElementById("meta").textContent =
  "Generated " + data.date + " with version " + data.version;

new Chart(document.getElementById("weights"), {
  type: "bar",
  data: {
    labels: data.benchmarks.map(b => b.name),
    datasets: [{
      label: "base weight (ps)",
      data: data.benchmarks.map(b => b.base_weight),
      backgroundColor: "rgba(13, 110, 253, 0.5)"
    }]
  },
  options: { plugins: { legend: { display: true } } }
});

const table = document.getElementById("models");
table.innerHTML =
  "<thead><tr><th>benchmark</th><th>base weight</th><th>slopes</th>" +
  "<th>reads</th><th>writes</th><th>proof size</th></tr></thead>";
const body = document.createElement("tbody");
for (const b of data.benchmarks) {
  const slopes = b.component_weight && b.component_weight.length
    ? b.component_weight.map(s => s.name + ": " + s.slope).join(", ")
    : "-";
  const row = document.createElement("tr");
  row.innerHTML = "<td>" + b.name + "</td><td>" + b.base_weight +
    "</td><td>" + slopes + "</td><td>" + b.base_reads +
    "</td><td>" + b.base_writes + "</td><td>" + b.proof_size + "</td>";
  body.appendChild(row);
}
table.appendChild(body);
</script>
</body>
</html>
`
