package schema

// ColumnKind identifies the dialect-neutral type of a column. The set is
// closed: every kind listed here must be handled by every dialect renderer,
// and a renderer that meets an unknown kind fails before any SQL is executed.
type ColumnKind string

const (
	// Primary keys.
	KindID            ColumnKind = "id"
	KindIncrements    ColumnKind = "increments"
	KindBigIncrements ColumnKind = "bigIncrements"

	// String family.
	KindString     ColumnKind = "string"
	KindChar       ColumnKind = "char"
	KindText       ColumnKind = "text"
	KindTinyText   ColumnKind = "tinyText"
	KindMediumText ColumnKind = "mediumText"
	KindLongText   ColumnKind = "longText"

	// Integer family.
	KindInteger               ColumnKind = "integer"
	KindTinyInteger           ColumnKind = "tinyInteger"
	KindSmallInteger          ColumnKind = "smallInteger"
	KindMediumInteger         ColumnKind = "mediumInteger"
	KindBigInteger            ColumnKind = "bigInteger"
	KindUnsignedInteger       ColumnKind = "unsignedInteger"
	KindUnsignedTinyInteger   ColumnKind = "unsignedTinyInteger"
	KindUnsignedSmallInteger  ColumnKind = "unsignedSmallInteger"
	KindUnsignedMediumInteger ColumnKind = "unsignedMediumInteger"
	KindUnsignedBigInteger    ColumnKind = "unsignedBigInteger"

	// Decimal and float family.
	KindFloat           ColumnKind = "float"
	KindDouble          ColumnKind = "double"
	KindDecimal         ColumnKind = "decimal"
	KindUnsignedDecimal ColumnKind = "unsignedDecimal"

	KindBoolean ColumnKind = "boolean"

	// Date and time family.
	KindDate         ColumnKind = "date"
	KindDateTime     ColumnKind = "dateTime"
	KindDateTimeTz   ColumnKind = "dateTimeTz"
	KindTime         ColumnKind = "time"
	KindTimeTz       ColumnKind = "timeTz"
	KindTimestamp    ColumnKind = "timestamp"
	KindTimestampTz  ColumnKind = "timestampTz"
	KindTimestamps   ColumnKind = "timestamps"
	KindTimestampsTz ColumnKind = "timestampsTz"
	KindSoftDeletes  ColumnKind = "softDeletes"
	KindYear         ColumnKind = "year"

	// Structured data.
	KindJSON  ColumnKind = "json"
	KindJSONB ColumnKind = "jsonb"

	// Identifiers and references.
	KindUUID        ColumnKind = "uuid"
	KindULID        ColumnKind = "ulid"
	KindForeignID   ColumnKind = "foreignId"
	KindForeignUUID ColumnKind = "foreignUuid"
	KindForeignULID ColumnKind = "foreignUlid"

	// Polymorphic pairs; each expands to {base}_type and {base}_id columns
	// plus a composite index at render time.
	KindMorphs             ColumnKind = "morphs"
	KindNullableMorphs     ColumnKind = "nullableMorphs"
	KindUUIDMorphs         ColumnKind = "uuidMorphs"
	KindNullableUUIDMorphs ColumnKind = "nullableUuidMorphs"

	KindEnum ColumnKind = "enum"
	KindSet  ColumnKind = "set"

	// Network.
	KindIPAddress  ColumnKind = "ipAddress"
	KindMACAddress ColumnKind = "macAddress"

	KindBinary ColumnKind = "binary"

	// Spatial family.
	KindGeometry           ColumnKind = "geometry"
	KindGeography          ColumnKind = "geography"
	KindPoint              ColumnKind = "point"
	KindLineString         ColumnKind = "lineString"
	KindPolygon            ColumnKind = "polygon"
	KindMultiPoint         ColumnKind = "multiPoint"
	KindMultiLineString    ColumnKind = "multiLineString"
	KindMultiPolygon       ColumnKind = "multiPolygon"
	KindGeometryCollection ColumnKind = "geometryCollection"

	// Business conveniences.
	KindSlug          ColumnKind = "slug"
	KindVersion       ColumnKind = "version"
	KindActive        ColumnKind = "active"
	KindRememberToken ColumnKind = "rememberToken"
)
