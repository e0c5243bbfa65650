package defaults

// Extension tables, organized by how likely each category is to expose a
// genuine leftover. The prioritizer reorders candidate lists with these
// buckets; the candidate generator crosses them with domain-derived names.

// CriticalBackupExtensions are the highest-value probes.
var CriticalBackupExtensions = []string{
	"bak", "backup", "old", "orig", "save", "copy", "tmp", "temp", "~",
	"sql", "dump", "db", "sqlite", "sqlite3", "mdb", "accdb", "asp", "aspx",
	"zip", "rar", "tar", "tar.gz", "7z", "tgz", "gz", "bz2", "php", "jsp", "py",
	"env", "config", "cfg", "conf", "ini", "json", "xml", "yaml", "yml",
}

// ConfigLogExtensions cover configuration and log artifacts.
var ConfigLogExtensions = []string{
	"txt", "log", "log1", "properties", "plist", "settings", "lock",
	"csv", "pid", "out", "err", "debug", "trace", "cache",
}

// BackupSuffixes are the common suffixes editors and admins append.
var BackupSuffixes = []string{
	"bak", "bak1", "bak2", "backup", "old", "old1", "old2", "orig", "original",
	"save", "saved", "copy", "copy1", "copy2", "tmp", "temp", "new", "dist",
	"prev", "previous", "last", "~", ".~", "swp", "swo",
}

// ArchiveExtensions cover compressed files that are almost always backups.
var ArchiveExtensions = []string{
	"zip", "rar", "tar", "tar.gz", "tar.bz2", "tar.xz", "tgz", "tbz2", "txz",
	"7z", "gz", "gzip", "bz2", "xz", "lzma", "z", "Z", "ace", "arj",
}

// DatabaseExtensions cover database files forgotten on servers.
var DatabaseExtensions = []string{
	"sql", "dump", "db", "sqlite", "sqlite3", "mdb", "accdb", "dbf",
	"sdf", "mdf", "ldf", "frm", "ibd", "opt", "par", "TRG", "TRN",
}

// ConfigExtensions cover sensitive configuration leftovers.
var ConfigExtensions = []string{
	"env", "config", "cfg", "conf", "ini", "yaml", "yml", "json", "xml",
	"properties", "plist", "toml", "settings", "lock", "pid",
}

// IDELeftoverExtensions cover temporary files left by editors.
var IDELeftoverExtensions = []string{
	"swp", "swo", "swn", "tmp~", "tmp.swp", "tmp.save", "sml",
	"autosave", "kate-swp", "bak~", "backup~", ".#", "#",
	"~1", "~2", "~3", "$$$", "___", ".tmp", ".temp",
}

// CodeBackupExtensions cover source files with backup suffixes.
var CodeBackupExtensions = []string{
	"php.bak", "php.old", "php.save", "php.tmp", "php~", "php.orig",
	"jsp.bak", "jsp.old", "jsp.save", "jsp~", "jsp.orig",
	"asp.bak", "asp.old", "asp.save", "asp~", "asp.orig",
	"aspx.bak", "aspx.old", "aspx.save", "aspx~", "aspx.orig",
	"py.bak", "py.old", "py.save", "py~", "py.orig", "py.tmp",
	"rb.bak", "rb.old", "rb.save", "rb~", "rb.orig",
	"sh.bak", "sh.old", "sh.save", "sh~", "sh.orig",
	"js.bak", "js.old", "js.save", "js~", "js.orig",
	"css.bak", "css.old", "css.save", "css~", "css.orig",
	"html.bak", "html.old", "html.save", "html~", "html.orig",
}

// VCSLeftoverExtensions cover version-control residue.
var VCSLeftoverExtensions = []string{
	"rej", "patch", "diff", "merge", "orig", "mine", "theirs",
	"r1", "r2", "working", "conflict", "BASE", "LOCAL", "REMOTE",
}

// DocumentBackupExtensions cover documents that often hold sensitive data.
var DocumentBackupExtensions = []string{
	"pdf", "doc", "docx", "xls", "xlsx", "ppt", "pptx",
	"pdf.bak", "doc.bak", "docx.bak", "xls.bak", "xlsx.bak",
	"rtf", "odt", "ods", "odp", "txt.bak", "csv.bak",
}

// SecurityExtensions cover credential and key material.
var SecurityExtensions = []string{
	"key", "pem", "crt", "cert", "p12", "pfx", "jks", "keystore", "csr",
	"htpasswd", "passwd", "shadow", "pwd", "secret", "credentials",
	"token", "auth", "oauth", "session", "cookie", "api_key",
	"private", "public", "rsa", "dsa", "ssh", "gpg", "pgp",
}

// BuildConfigExtensions cover environment and build artifacts.
var BuildConfigExtensions = []string{
	"env.local", "env.dev", "env.prod", "env.test", "env.staging", "env.backup",
	"lock.json", "yarn.lock", "package-lock.json", "composer.lock", "Pipfile.lock",
	"requirements.txt.bak", "pom.xml.bak", "build.gradle.bak", "Makefile.bak",
}

// ExtraExtensions are legacy and platform-specific probes.
var ExtraExtensions = []string{
	"wml", "bkl", "wmls", "udl", "bat", "dll", "reg", "cmd", "vbs",
	"hta", "wsf", "cpl", "msc", "lnk", "url", "inf", "ins", "isp",
	"teste.asp", "test.asp", "teste.aspx", "test.aspx", "teste.php", "test.php",
}

// Extensions returns the full default extension list, ordered by category
// priority. Callers own the slice.
func Extensions() []string {
	groups := [][]string{
		CriticalBackupExtensions,
		ConfigLogExtensions,
		SecurityExtensions,
		CodeBackupExtensions,
		IDELeftoverExtensions,
		VCSLeftoverExtensions,
		DocumentBackupExtensions,
		BuildConfigExtensions,
		ExtraExtensions,
	}
	var out []string
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}
