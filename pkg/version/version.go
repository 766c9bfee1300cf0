package version

// Version is the current release of countryname.
const Version = "v0.3.1"
