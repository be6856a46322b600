// Package report ranks triangulation groups and renders them for people:
// text reports in three styles, flat export records, CSV and XLSX files.
//
// Every function takes the group list explicitly and is deterministic: the
// same groups always render to byte-identical output. Ranking is a stable
// sort by member count, so equal-sized groups keep their merged order.
//
// Surnames are display labels only. Surname strips the titles "Mr.", "Mrs.",
// "Dr." and "Ph.D." and keeps the last remaining word:
//
//	report.Surname("Dr. Jane A. Smith") // "Smith"
//	report.Surname("Madonna")           // "Madonna"
//	report.Surname("")                  // "Unknown"
package report
