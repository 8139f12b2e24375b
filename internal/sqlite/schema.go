package sqlite

// Schema DDL. Tables are created on every Open with IF NOT EXISTS, so the
// database file is bootstrapped on first access. All subordinate tables
// cascade on person/group deletion; cascading only takes effect because Open
// enables the foreign_keys pragma on the connection.
const (
	createPerson = `CREATE TABLE IF NOT EXISTS person (
    person_id INTEGER PRIMARY KEY NOT NULL,
    last_name TEXT,
    first_name TEXT,
    modification_date INTEGER NOT NULL,
    birthdate INTEGER
);`

	createContactGroup = `CREATE TABLE IF NOT EXISTS contact_group (
    group_id INTEGER PRIMARY KEY NOT NULL,
    title TEXT NOT NULL
);`

	createBelongsTo = `CREATE TABLE IF NOT EXISTS belongs_to (
    group_id INTEGER,
    person_id INTEGER,
    FOREIGN KEY (group_id) REFERENCES contact_group (group_id) ON DELETE CASCADE,
    FOREIGN KEY (person_id) REFERENCES person (person_id) ON DELETE CASCADE,
    PRIMARY KEY (group_id, person_id)
);`

	createAddress = `CREATE TABLE IF NOT EXISTS address (
    address_id INTEGER PRIMARY KEY NOT NULL,
    label TEXT NOT NULL,
    town TEXT,
    zip_code TEXT,
    street TEXT,
    house_number TEXT,
    person_id INTEGER NOT NULL,
    FOREIGN KEY (person_id) REFERENCES person (person_id) ON DELETE CASCADE
);`

	createPhoneField = `CREATE TABLE IF NOT EXISTS cell_number_field (
    cell_number_id INTEGER PRIMARY KEY NOT NULL,
    label TEXT NOT NULL,
    cell_number TEXT NOT NULL,
    person_id INTEGER NOT NULL,
    FOREIGN KEY (person_id) REFERENCES person (person_id) ON DELETE CASCADE
);`

	createCustomField = `CREATE TABLE IF NOT EXISTS custom_field (
    field_id INTEGER PRIMARY KEY NOT NULL,
    label TEXT NOT NULL,
    field_value TEXT NOT NULL,
    v_type TEXT,
    person_id INTEGER NOT NULL,
    FOREIGN KEY (person_id) REFERENCES person (person_id) ON DELETE CASCADE
);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createPerson,
	createContactGroup,
	createBelongsTo,
	createAddress,
	createPhoneField,
	createCustomField,
}
