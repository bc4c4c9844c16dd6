package cmn

// Version 当前服务版本号
const Version = "0.1.0"
