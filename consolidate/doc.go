// Package consolidate merges resolved station matches into the final
// deduplicated registry: records that represent one physical station are
// fused by code overlap, exact name or shared base name under a proximity
// bound, exits are normalized to "Exit <id>" form, deduplicated and kept in
// natural order (lettered exits before numbered ones).
package consolidate
