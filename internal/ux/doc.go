// Package ux tracks how familiar the user is with the wheel and decides
// how much guidance to show.
//
// State lives in .feel/preferences.json:
//
//   - User journey state (New -> Learning -> Familiar)
//   - Session and completion counters that drive the transitions
//   - A guidance override that pins the disclosure level
//
// Existing users with no preferences file start as New; the file is
// created on the first save.
package ux
