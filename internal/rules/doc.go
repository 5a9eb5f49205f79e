// Package rules loads the category table that drives classification.
//
// A rules file is a JSON object with a "categories" object mapping folder
// names to extension suffixes and an optional "script_name" that is never
// moved. Category order is the order keys appear in the file; matching walks
// categories in that order and the first category with any matching suffix
// wins. Within one category longer suffixes are tried first so
// ".transcript.vtt" is reported instead of ".vtt".
package rules
