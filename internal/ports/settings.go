package ports

// SettingsPort is the narrow slice of resolver settings the report
// aggregator consumes when deriving a fixed descriptor.
type SettingsPort interface {
	// DefaultStatus is the publication status stamped on descriptors that
	// do not carry one of their own.
	DefaultStatus() string
}
