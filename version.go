package edvora

// Version is the release of the library and the edvora binary.
const Version = "0.3.0"
