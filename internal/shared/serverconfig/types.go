package serverconfig

type Config struct {
	MySQL     MySQLConfig   `yaml:"mysql" mapstructure:"mysql"`
	MongoDB   MongoDBConfig `yaml:"mongodb" mapstructure:"mongodb"`
	OpsServer OpsConfig     `yaml:"opsserver" mapstructure:"opsserver"`
	Log       LogConfig     `yaml:"log" mapstructure:"log"`
	Logic     LogicConfig   `yaml:"logic" mapstructure:"logic"`
}

type MySQLConfig struct {
	Host     string `yaml:"host" mapstructure:"host"`
	Port     int    `yaml:"port" mapstructure:"port"`
	User     string `yaml:"user" mapstructure:"user"`
	Password string `yaml:"password" mapstructure:"password"`
	DBName   string `yaml:"dbname" mapstructure:"dbname"`
	Charset  string `yaml:"charset" mapstructure:"charset"`
	MaxIdle  int    `yaml:"max_idle" mapstructure:"max_idle"`
	MaxConn  int    `yaml:"max_conn" mapstructure:"max_conn"`
}

type MongoDBConfig struct {
	URI             string `yaml:"uri" mapstructure:"uri"`
	Database        string `yaml:"database" mapstructure:"database"`
	ConnectTimeoutS int    `yaml:"connect_timeout_s" mapstructure:"connect_timeout_s"`
}

type OpsConfig struct {
	Host string `yaml:"host" mapstructure:"host"`
	Port int    `yaml:"port" mapstructure:"port"`
}

type LogConfig struct {
	FileDir    string `yaml:"file_dir" mapstructure:"file_dir"`
	MaxSize    int    `yaml:"max_size" mapstructure:"max_size"` // MB
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAge     int    `yaml:"max_age" mapstructure:"max_age"` // days
	Compress   bool   `yaml:"compress" mapstructure:"compress"`
	Level      string `yaml:"level" mapstructure:"level"` // debug/info/warn/error...
	Dev        bool   `yaml:"dev" mapstructure:"dev"`
}

type LogicConfig struct {
	ServerID int `yaml:"server_id" mapstructure:"server_id"`
	// BaseMarchMinutes is the march time across one plain cell before
	// terrain speed modifiers apply.
	BaseMarchMinutes int `yaml:"base_march_minutes" mapstructure:"base_march_minutes"`
	// TickCap bounds a single combat encounter, in simulated hours.
	TickCap int `yaml:"tick_cap" mapstructure:"tick_cap"`
}
