package version

// Version is the current rfctl version.
const Version = "0.1.0"
