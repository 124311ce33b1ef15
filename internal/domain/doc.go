// Package domain models streetlight theft incident records and the views
// derived from them for the dashboard.
//
// # Data Source
//
// Incidents come from a single spreadsheet export maintained by the street
// lighting operator ("hurtos_V1.csv"). Each row is one reported theft tied to
// a streetlight asset. The file is loaded once at startup and never written
// back; every view is computed from the same immutable [Dataset].
//
// # Column Conventions
//
//	AÑO       reporting year, integer ("2023"; spreadsheet tools sometimes write "2023.0")
//	Mes       month label as typed by the operator ("Enero", "ENERO", "Ene", "1")
//	Farola    asset count for the row; the raw text doubles as the hover label
//	Latitud   WGS-84 latitude, optional
//	Longitud  WGS-84 longitude, optional
//
// Column names are configurable; matching ignores case, accents and
// surrounding whitespace, so "ANO", "año" and " AÑO " all resolve to the same column.
//
// # Coordinates
//
// A point is drawn only when both latitude and longitude are present, numeric
// and within WGS-84 range. Partial pairs are dropped, never defaulted to 0,0.
// When a selection has no drawable point the map centers on Bogotá
// ([FallbackCenter]).
//
// # Month Ordering
//
// Month labels are kept verbatim for display. For axis ordering they are
// folded (lower case, accents stripped) and matched against Spanish and
// English month names, three-letter abbreviations and the numbers 1–12.
// Labels that match nothing keep their first-appearance order after the
// recognized months. See [MonthOrder].
package domain
