// internal/writer/template.go
package writer

// defaultWeightTemplate is the built-in Rust weight file template,
// used when no template path is configured.
const defaultWeightTemplate = `{{ if .Header }}{{ .Header }}

{{ end }}//! Autogenerated weights for {{ underscore .Pallet }}
//!
//! DATE: {{ .Date }}, TOOL VERSION: {{ .Version }}
//! EXECUTED COMMAND: {{ join .Args " " }}

#![allow(unused_parens)]
#![allow(unused_imports)]

use frame_support::{traits::Get, weights::{Weight, constants::RocksDbWeight}};
use sp_std::marker::PhantomData;

/// Weight functions for ` + "`{{ underscore .Pallet }}`" + `.
pub struct WeightInfo<T>(PhantomData<T>);
impl<T: frame_system::Config> {{ underscore .Pallet }}::WeightInfo for WeightInfo<T> {
{{- range .Benchmarks }}
	fn {{ .Name }}({{ range $i, $c := .Components }}{{ if $i }}, {{ end }}{{ if not $c.IsUsed }}_{{ end }}{{ $c.Name }}: u32{{ end }}) -> Weight {
		({{ .BaseWeight }} as Weight)
		{{- range .ComponentWeight }}
			.saturating_add(({{ .Slope }} as Weight).saturating_mul({{ .Name }} as Weight))
		{{- end }}
		{{- if .BaseReads }}
			.saturating_add(T::DbWeight::get().reads({{ .BaseReads }} as Weight))
		{{- end }}
		{{- range .ComponentReads }}
			.saturating_add(T::DbWeight::get().reads(({{ .Slope }} as Weight).saturating_mul({{ .Name }} as Weight)))
		{{- end }}
		{{- if .BaseWrites }}
			.saturating_add(T::DbWeight::get().writes({{ .BaseWrites }} as Weight))
		{{- end }}
		{{- range .ComponentWrites }}
			.saturating_add(T::DbWeight::get().writes(({{ .Slope }} as Weight).saturating_mul({{ .Name }} as Weight)))
		{{- end }}
	}
{{- end }}
}
`
